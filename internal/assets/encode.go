package assets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodeShape writes s as a YAML shape document that ParseShape reads back.
// Each point is a flow sequence; comment, if set, heads the document.
func EncodeShape(w io.Writer, s *Shape, comment string) error {
	points := &yaml.Node{Kind: yaml.SequenceNode}
	for _, p := range s.Points {
		points.Content = append(points.Content, &yaml.Node{
			Kind:  yaml.SequenceNode,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				floatNode(p[0]),
				floatNode(p[1]),
			},
		})
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: comment,
		Content: []*yaml.Node{{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: "name"},
				{Kind: yaml.ScalarNode, Value: s.Name},
				{Kind: yaml.ScalarNode, Value: "points"},
				points,
			},
		}},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding shape: %w", err)
	}
	return enc.Close()
}

// floatNode formats v with at most four decimals.
func floatNode(v float32) *yaml.Node {
	s := strconv.FormatFloat(float64(v), 'f', 4, 32)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}
