package visualize

import (
	"sort"

	"github.com/siherrmann/absa/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
)

// NodeRole tells whether a network node is an aspect or an opinion
type NodeRole string

const (
	RoleAspect  NodeRole = "aspect"
	RoleOpinion NodeRole = "opinion"
)

// NetworkNode is an aspect or opinion word in the network
type NetworkNode struct {
	id   int64
	Text string
	Role NodeRole
}

// ID implements graph.Node
func (n *NetworkNode) ID() int64 { return n.id }

// OpinionEdge links an aspect to an opinion and carries the pair's sentiment score
type OpinionEdge struct {
	F, T      graph.Node
	Sentiment float64
}

func (e OpinionEdge) From() graph.Node { return e.F }
func (e OpinionEdge) To() graph.Node   { return e.T }
func (e OpinionEdge) ReversedEdge() graph.Edge {
	return OpinionEdge{F: e.T, T: e.F, Sentiment: e.Sentiment}
}

type nodeKey struct {
	role NodeRole
	text string
}

// AspectNetwork is the undirected aspect-opinion graph of a set of pairs.
// It is a simple graph: repeated pairs collapse into one edge keeping the first score.
type AspectNetwork struct {
	graph *simple.UndirectedGraph
	nodes []*NetworkNode
	index map[nodeKey]*NetworkNode
	edges []OpinionEdge
}

// BuildAspectNetwork creates the network of the given pairs.
// Nodes and edges keep the order of their first appearance.
func BuildAspectNetwork(pairs []model.AspectOpinionPair) *AspectNetwork {
	n := &AspectNetwork{
		graph: simple.NewUndirectedGraph(),
		index: map[nodeKey]*NetworkNode{},
	}

	for _, pair := range pairs {
		aspect := n.addNode(RoleAspect, pair.Aspect)
		opinion := n.addNode(RoleOpinion, pair.Opinion)

		if n.graph.HasEdgeBetween(aspect.ID(), opinion.ID()) {
			continue
		}
		edge := OpinionEdge{F: aspect, T: opinion, Sentiment: pair.SentimentScore}
		n.graph.SetEdge(edge)
		n.edges = append(n.edges, edge)
	}

	return n
}

func (n *AspectNetwork) addNode(role NodeRole, text string) *NetworkNode {
	key := nodeKey{role: role, text: text}
	if node, ok := n.index[key]; ok {
		return node
	}

	node := &NetworkNode{id: int64(len(n.nodes)), Text: text, Role: role}
	n.graph.AddNode(node)
	n.nodes = append(n.nodes, node)
	n.index[key] = node
	return node
}

// Nodes returns the nodes in order of first appearance
func (n *AspectNetwork) Nodes() []*NetworkNode {
	return n.nodes
}

// Edges returns the distinct edges in order of first appearance
func (n *AspectNetwork) Edges() []OpinionEdge {
	return n.edges
}

// Node returns the node with the given role and text
func (n *AspectNetwork) Node(role NodeRole, text string) (*NetworkNode, bool) {
	node, ok := n.index[nodeKey{role: role, text: text}]
	return node, ok
}

// Layout computes a force-directed layout with the Eades spring algorithm.
// The same network and seed always give the same coordinates.
func (n *AspectNetwork) Layout(seed uint64) map[int64]r2.Vec {
	coords := make(map[int64]r2.Vec, len(n.nodes))
	if len(n.nodes) < 2 {
		for _, node := range n.nodes {
			coords[node.ID()] = r2.Vec{}
		}
		return coords
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   30,
		Theta:     0.2,
		Src:       rand.NewSource(seed),
	}
	optimizer := layout.NewOptimizerR2(orderedGraph{n}, eades.Update)
	for optimizer.Update() {
	}

	for _, node := range n.nodes {
		coords[node.ID()] = optimizer.Coord2(node.ID())
	}
	return coords
}

// orderedGraph iterates nodes by ID so the layout does not depend on map order.
// Edge weights are not exposed: negative scores would turn attraction into repulsion.
type orderedGraph struct {
	n *AspectNetwork
}

func (g orderedGraph) Node(id int64) graph.Node { return g.n.graph.Node(id) }

func (g orderedGraph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(g.n.nodes))
	for i, node := range g.n.nodes {
		nodes[i] = node
	}
	return iterator.NewOrderedNodes(nodes)
}

func (g orderedGraph) From(id int64) graph.Nodes {
	nodes := graph.NodesOf(g.n.graph.From(id))
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}

func (g orderedGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.n.graph.HasEdgeBetween(xid, yid)
}

func (g orderedGraph) Edge(uid, vid int64) graph.Edge { return g.n.graph.Edge(uid, vid) }
