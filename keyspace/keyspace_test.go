package keyspace

import (
	"errors"
	"testing"

	"github.com/distkit/keyspace/strategy"
)

type kNode string

func (n kNode) ID() string { return string(n) }

func buildBasic(t *testing.T, nodes []kNode) *Keyspace[kNode, string] {
	t.Helper()
	ks, err := Build[kNode, string](Options[kNode, string]{Nodes: nodes})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ks
}

// S1: three nodes, default R=3, all replicas drawn from the initial set.
func TestBuild_ThreeNodesDefaultReplicationFactor(t *testing.T) {
	t.Parallel()

	nodes := []kNode{"node0", "node1", "node2"}
	ks := buildBasic(t, nodes)

	replicas, err := ks.ReplicasSlice([]byte("key0"))
	if err != nil {
		t.Fatalf("ReplicasSlice: %v", err)
	}
	if len(replicas) != 3 {
		t.Fatalf("len(replicas) = %d, want 3", len(replicas))
	}
	allowed := map[kNode]bool{"node0": true, "node1": true, "node2": true}
	for _, r := range replicas {
		if !allowed[r] {
			t.Fatalf("replica %s not a member of the initial node set", r)
		}
	}
}

// S2: fewer nodes than R fails Build.
func TestBuild_BelowReplicationFactor(t *testing.T) {
	t.Parallel()

	_, err := Build[kNode, string](Options[kNode, string]{
		Nodes:             []kNode{"a", "b"},
		ReplicationFactor: 3,
	})
	if !errors.Is(err, ErrBelowReplicationFactor) {
		t.Fatalf("Build with 2 nodes, R=3 = %v, want ErrBelowReplicationFactor", err)
	}
}

func TestBuild_NegativeReplicationFactor(t *testing.T) {
	t.Parallel()

	_, err := Build[kNode, string](Options[kNode, string]{
		Nodes:             []kNode{"a", "b", "c"},
		ReplicationFactor: -1,
	})
	if !errors.Is(err, ErrInvalidReplicationFactor) {
		t.Fatalf("Build with R=-1 = %v, want ErrInvalidReplicationFactor", err)
	}
}

// S3: duplicate node ids fail Build.
func TestBuild_DuplicateNode(t *testing.T) {
	t.Parallel()

	_, err := Build[kNode, string](Options[kNode, string]{
		Nodes: []kNode{"a", "a", "b", "c", "d"},
	})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("Build with duplicate node = %v, want ErrDuplicateNode", err)
	}
}

func TestBuild_InvalidShardCount(t *testing.T) {
	t.Parallel()

	_, err := Build[kNode, string](Options[kNode, string]{
		Nodes:      []kNode{"a", "b", "c"},
		ShardCount: 3, // not a power of two
	})
	if !errors.Is(err, ErrInvalidShardCount) {
		t.Fatalf("Build with ShardCount=3 = %v, want ErrInvalidShardCount", err)
	}
}

func TestKeyspace_AddNode_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	ks := buildBasic(t, []kNode{"a", "b", "c"})
	if _, err := ks.AddNode(kNode("a")); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("AddNode(a) = %v, want ErrDuplicateNode", err)
	}
	if ks.Nodes()[0] != "a" || len(ks.Nodes()) != 3 {
		t.Fatal("failed AddNode must not mutate the registry")
	}
}

func TestKeyspace_RemoveNode_RejectsUnknown(t *testing.T) {
	t.Parallel()

	ks := buildBasic(t, []kNode{"a", "b", "c"})
	if _, err := ks.RemoveNode("zzz"); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("RemoveNode(zzz) = %v, want ErrUnknownNode", err)
	}
}

func TestKeyspace_RemoveNode_RejectsBelowReplicationFactor(t *testing.T) {
	t.Parallel()

	ks := buildBasic(t, []kNode{"a", "b", "c"})
	if _, err := ks.RemoveNode("a"); !errors.Is(err, ErrBelowReplicationFactor) {
		t.Fatalf("RemoveNode at R=3,n=3 = %v, want ErrBelowReplicationFactor", err)
	}
}

func TestKeyspace_AddNode_CommitsAndReturnsPlan(t *testing.T) {
	t.Parallel()

	ks := buildBasic(t, []kNode{"a", "b", "c", "d"})
	plan, err := ks.AddNode(kNode("e"))
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if plan == nil {
		t.Fatal("AddNode returned a nil plan")
	}
	found := false
	for _, n := range ks.Nodes() {
		if n == "e" {
			found = true
		}
	}
	if !found {
		t.Fatal("AddNode did not commit the new node to the registry")
	}
}

func TestKeyspace_ReplicasSlice_InsufficientEligibleReplicas(t *testing.T) {
	t.Parallel()

	// Strategy that rejects everything makes every query fail.
	ks, err := Build[kNode, string](Options[kNode, string]{
		Nodes: []kNode{"a", "b", "c"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ks.strat = rejectAllFactory{}

	if _, err := ks.ReplicasSlice([]byte("any")); !errors.Is(err, ErrInsufficientEligibleReplicas) {
		t.Fatalf("ReplicasSlice with rejecting strategy = %v, want ErrInsufficientEligibleReplicas", err)
	}
}

type rejectAllFactory struct{}

func (rejectAllFactory) New() strategy.Strategy[kNode] { return rejectAllStrategy{} }

type rejectAllStrategy struct{}

func (rejectAllStrategy) IsEligible(kNode) bool { return false }
