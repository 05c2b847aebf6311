package router_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0C3L0T/vnfnet/resource"
	"github.com/0C3L0T/vnfnet/router"
	"github.com/0C3L0T/vnfnet/substrate"
)

func TestFindPathSingleHop(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 2, substrate.Reserved)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	_, err := sub.AddLink(user, h1, 10, 5, 0)
	require.NoError(t, err)

	path, err := router.FindPath(sub, []string{user, h1}, 2, "conn-1", nil)
	require.NoError(t, err)
	require.Equal(t, []string{user, h1}, path)

	link, err := sub.Link(sub.LinkIDs()[0])
	require.NoError(t, err)
	require.Equal(t, 2.0, link.BandwidthUsed)
}

func TestFindPathNoRoute(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 2, substrate.Reserved)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})

	_, err := router.FindPath(sub, []string{user, h1}, 2, "conn-1", nil)
	require.ErrorIs(t, err, router.ErrNoRouteAvailable)
}

func TestFindPathSuspendsOverSubscribedEdgeAndRetries(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 5, substrate.Reserved)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	h2 := sub.AddHost(4, 8, 128, resource.HostPhysical{})

	// Direct low-bandwidth link user->h1, and a detour user->h2->h1 with
	// enough bandwidth on both hops.
	_, err := sub.AddLink(user, h1, 1, 5, 0)
	require.NoError(t, err)
	_, err = sub.AddLink(user, h2, 10, 5, 0)
	require.NoError(t, err)
	_, err = sub.AddLink(h2, h1, 10, 5, 0)
	require.NoError(t, err)

	path, err := router.FindPath(sub, []string{user, h1}, 5, "conn-1", nil)
	require.NoError(t, err)
	require.Equal(t, []string{user, h2, h1}, path)

	// The suspended direct edge must be restored afterwards, untouched.
	require.True(t, sub.Graph().HasEdge(user, h1))
	directAttrs, err := sub.Graph().EdgeAttrsOf(user, h1)
	require.NoError(t, err)
	directLink, err := sub.Link(directAttrs.LinkID)
	require.NoError(t, err)
	require.Equal(t, 0.0, directLink.BandwidthUsed)
}

func TestFindPathRollsBackPartialCommitOnSuspend(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 5, substrate.Reserved)
	hMid := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	hDst := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	hAlt := sub.AddHost(4, 8, 128, resource.HostPhysical{})

	firstHopLinkID, err := sub.AddLink(user, hMid, 10, 1, 0)
	require.NoError(t, err)
	_, err = sub.AddLink(hMid, hDst, 1, 1, 0) // too small, forces suspend+retry
	require.NoError(t, err)
	_, err = sub.AddLink(user, hAlt, 10, 10, 0)
	require.NoError(t, err)
	_, err = sub.AddLink(hAlt, hDst, 10, 10, 0)
	require.NoError(t, err)

	path, err := router.FindPath(sub, []string{user, hDst}, 5, "conn-1", nil)
	require.NoError(t, err)
	require.Equal(t, []string{user, hAlt, hDst}, path)

	// The first hop of the abandoned pass must have been rolled back.
	firstHopLink, err := sub.Link(firstHopLinkID)
	require.NoError(t, err)
	require.Equal(t, 0.0, firstHopLink.BandwidthUsed)
}

func TestReleasePathReversesCommit(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 2, substrate.Reserved)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	_, err := sub.AddLink(user, h1, 10, 5, 0)
	require.NoError(t, err)

	path, err := router.FindPath(sub, []string{user, h1}, 2, "conn-1", nil)
	require.NoError(t, err)

	require.NoError(t, router.ReleasePath(sub, path, "conn-1"))
	link, err := sub.Link(sub.LinkIDs()[0])
	require.NoError(t, err)
	require.Equal(t, 0.0, link.BandwidthUsed)
}

func TestPathDelaySumsHops(t *testing.T) {
	sub := substrate.New(slog.Default())
	user := sub.AddUser("alice", "chain-1", 2, substrate.Reserved)
	h1 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	h2 := sub.AddHost(4, 8, 128, resource.HostPhysical{})
	_, err := sub.AddLink(user, h1, 10, 3, 0)
	require.NoError(t, err)
	_, err = sub.AddLink(h1, h2, 10, 4, 0)
	require.NoError(t, err)

	require.Equal(t, 7.0, router.PathDelay(sub, []string{user, h1, h2}))
}
