package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/roadroute/pkg/util"
)

// WriteGraph stores the graph as bzip2-compressed, tab separated lines:
// a header "numNodes numEdges", one line per node, one line per edge in edge id order.
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)
	if err := g.writeLines(w); err != nil {
		bz.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func (g *Graph) writeLines(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges()); err != nil {
		return err
	}

	for _, n := range g.nodes {
		latF := strconv.FormatFloat(n.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(n.lon, 'f', -1, 64)
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", n.id, latF, lonF); err != nil {
			return err
		}
	}

	for _, e := range g.edges {
		distF := strconv.FormatFloat(e.distance, 'f', -1, 64)
		speedF := strconv.FormatFloat(e.speed, 'f', -1, 64)

		_, err := fmt.Fprintf(w, "%d\t%d\t%d\t%t\t%s\t%t\t%s\t%d\t%s\t%s\t%d",
			g.nodes[e.from].id, g.nodes[e.to].id, e.key, e.hasDistance, distF, e.hasSpeed, speedF,
			e.osmWayId, strconv.Quote(e.classification), strconv.Quote(e.name), len(e.attributes))
		if err != nil {
			return err
		}

		names := make([]string, 0, len(e.attributes))
		for name := range e.attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "\t%s\t%s", strconv.Quote(name),
				strconv.FormatFloat(e.attributes[name], 'f', -1, 64)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return readLines(bufio.NewReader(bz))
}

func readLines(br *bufio.Reader) (*Graph, error) {
	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := util.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("invalid graph header: %q", line)
	}
	numNodes, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	for i := 0; i < numNodes; i++ {
		nodeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		if err := parseNode(g, nodeLine); err != nil {
			return nil, err
		}
	}

	for i := 0; i < numEdges; i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		if err := parseEdge(g, edgeLine); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return g, nil
}

func parseNode(g *Graph, line string) error {
	tokens := strings.Split(line, "\t")
	if len(tokens) != 3 {
		return fmt.Errorf("invalid node line: %q", line)
	}
	id, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return err
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return err
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return err
	}
	_, err = g.AddNode(NodeID(id), lat, lon)
	return err
}

func parseEdge(g *Graph, line string) error {
	tokens := strings.Split(line, "\t")
	if len(tokens) < 11 {
		return fmt.Errorf("invalid edge line: %q", line)
	}

	from, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return err
	}
	to, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return err
	}
	key, err := strconv.Atoi(tokens[2])
	if err != nil {
		return err
	}

	in := EdgeInput{}
	hasDist, err := strconv.ParseBool(tokens[3])
	if err != nil {
		return err
	}
	if hasDist {
		dist, err := strconv.ParseFloat(tokens[4], 64)
		if err != nil {
			return err
		}
		in.Distance = &dist
	}
	hasSpeed, err := strconv.ParseBool(tokens[5])
	if err != nil {
		return err
	}
	if hasSpeed {
		speed, err := strconv.ParseFloat(tokens[6], 64)
		if err != nil {
			return err
		}
		in.Speed = &speed
	}
	in.OsmWayID, err = strconv.ParseInt(tokens[7], 10, 64)
	if err != nil {
		return err
	}
	class, err := strconv.Unquote(tokens[8])
	if err != nil {
		return err
	}
	in.Classification = ScalarTag(class)
	name, err := strconv.Unquote(tokens[9])
	if err != nil {
		return err
	}
	in.Name = ScalarTag(name)

	numAttrs, err := strconv.Atoi(tokens[10])
	if err != nil {
		return err
	}
	if len(tokens) != 11+2*numAttrs {
		return fmt.Errorf("expected %d attributes in edge line: %q", numAttrs, line)
	}
	if numAttrs > 0 {
		in.Attributes = make(map[string]float64, numAttrs)
		for i := 0; i < numAttrs; i++ {
			attrName, err := strconv.Unquote(tokens[11+2*i])
			if err != nil {
				return err
			}
			val, err := strconv.ParseFloat(tokens[12+2*i], 64)
			if err != nil {
				return err
			}
			in.Attributes[attrName] = val
		}
	}

	gotKey, err := g.AddEdge(NodeID(from), NodeID(to), in)
	if err != nil {
		return err
	}
	if gotKey != key {
		return fmt.Errorf("parallel edge key mismatch for %d->%d: stored %d, rebuilt %d", from, to, key, gotKey)
	}
	return nil
}

// DumpGraph writes a human readable listing of nodes, adjacency and edges, for inspecting a loaded map.
func (g *Graph) DumpGraph(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "=== nodes (%d) ===\n", g.NumberOfVertices())
	for _, n := range g.nodes {
		fmt.Fprintf(bw, "%d: lat=%.7f lon=%.7f\n", n.id, n.lat, n.lon)
	}

	fmt.Fprintf(bw, "\n=== adjacency ===\n")
	for u, out := range g.outEdges {
		fmt.Fprintf(bw, "%d ->", g.nodes[u].id)
		for _, eId := range out {
			e := g.edges[eId]
			fmt.Fprintf(bw, " %d[%d]", g.nodes[e.to].id, e.key)
		}
		fmt.Fprintf(bw, "\n")
	}

	fmt.Fprintf(bw, "\n=== edges (%d) ===\n", g.NumberOfEdges())
	for _, e := range g.edges {
		fmt.Fprintf(bw, "(%d, %d, %d) distance=%s speed=%s highway=%q name=%q\n",
			g.nodes[e.from].id, g.nodes[e.to].id, e.key,
			formatOptional(e.distance, e.hasDistance), formatOptional(e.speed, e.hasSpeed),
			e.classification, e.name)
	}

	return bw.Flush()
}

func formatOptional(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
