// Command vnfsim-demo wires a substrate, catalog, orchestrator, and clock
// together end to end over a small topofixture.Star topology, the way
// examples/dijkstra_city_route.go and friends illustrate a single library
// call path rather than offering a general-purpose CLI. Not a supported
// entry point for running real scenarios — see config.Load for that.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/0C3L0T/vnfnet/catalog"
	"github.com/0C3L0T/vnfnet/orchestrator"
	"github.com/0C3L0T/vnfnet/router"
	"github.com/0C3L0T/vnfnet/simclock"
	"github.com/0C3L0T/vnfnet/snapshot"
	"github.com/0C3L0T/vnfnet/substrate"
	"github.com/0C3L0T/vnfnet/topofixture"
	"github.com/0C3L0T/vnfnet/vnflog"
)

func main() {
	logger := vnflog.New(os.Stdout, slog.LevelInfo)

	sub := substrate.New(logger)
	cat := catalog.New(sub, logger)
	orc := orchestrator.New(sub, cat, logger, router.DelayWeight)
	clock := simclock.New(cat, orc, sub, logger)

	// A hub-and-spoke substrate: host 0 is the hub, hosts 1-3 are leaves.
	hosts, err := topofixture.Star(sub, 4, topofixture.DefaultLinkSpec)
	if err != nil {
		log.Fatalf("building topology: %v", err)
	}
	hub, leaf := hosts[0], hosts[1]

	firewall := cat.AddService("firewall", 1, 2, 4, 1)
	nat := cat.AddService("nat", 1, 1, 2, 1)

	chain, err := cat.EmbedChain("web-chain", []string{firewall, nat}, []string{hub, leaf}, 50, 60)
	if err != nil {
		log.Fatalf("embedding chain: %v", err)
	}

	userID := sub.AddUser("client-1", chain.ID, 2, substrate.Reserved)
	if _, err := sub.AddLink(userID, hub, 10, 1, 0); err != nil {
		log.Fatalf("attaching user to hub: %v", err)
	}

	conn, err := orc.StartTraffic(userID)
	if err != nil {
		log.Fatalf("starting traffic: %v", err)
	}
	fmt.Printf("started connection %s over path %v\n", conn.ID, conn.NodePath)
	fmt.Printf("ping=%.2fms\n", orc.ServicePing(conn))

	state := snapshot.Capture(sub)
	fmt.Println(state)
	fmt.Print(state.HostSummaries())

	clock.Step(120) // past the chain's 60-unit TTL
	if _, err := cat.Chain(chain.ID); err != nil {
		fmt.Printf("chain expired as expected: %v\n", err)
	}
}
