package main

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/texit"
	"github.com/deepnoodle-ai/texit/ast"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAstCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [expression]",
		Short: "Show the syntax tree of an expression",
		Long: `Show the syntax tree of an expression after preprocessing, i.e. after
Unicode glyphs are replaced and module qualifiers are stripped.`,
		Example: `  texit ast 'np.sqrt(α)/2'
  texit ast -o json 'x**2'
  texit ast --stats 'Re_x=(rho*v*x)/mu'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return astHandler(cmd, v, args)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "tree format (text, json)")
	cmd.Flags().Bool("stats", false, "summarize node count, depth and identifiers")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func astHandler(cmd *cobra.Command, v *viper.Viper, args []string) error {
	text, name, err := getInput(cmd, args)
	if err != nil {
		return err
	}
	exprs := splitLines(text)
	if len(exprs) == 0 {
		return fmt.Errorf("no expressions to parse")
	}
	opts, err := getRenderOptions(cmd, v)
	if err != nil {
		return err
	}

	withStats, _ := cmd.Flags().GetBool("stats")
	var trees []*ASTNode
	for _, line := range exprs {
		program, err := texit.Parse(cmd.Context(), line.Text, opts...)
		if err != nil {
			errOut := cmd.ErrOrStderr()
			if name != "" {
				fmt.Fprintf(errOut, "%s:%d: %s\n", name, line.Number, line.Text)
			}
			fmt.Fprintln(errOut, errors.Format(err, useColor(v, errOut)))
			return errRenderFailed
		}
		tree := nodeToJSON(program)
		if withStats {
			tree.Stats = statsOf(program)
		}
		trees = append(trees, tree)
	}

	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		if len(trees) == 1 {
			return writeJSON(cmd.OutOrStdout(), v, trees[0])
		}
		return writeJSON(cmd.OutOrStdout(), v, trees)
	case "text":
		colored := useColor(v, cmd.OutOrStdout())
		for _, tree := range trees {
			printAST(cmd.OutOrStdout(), tree, colored)
			if tree.Stats != nil {
				printStats(cmd.OutOrStdout(), tree.Stats, colored)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
	Stats    *treeStats `json:"stats,omitempty"`
}

// treeStats summarizes a parsed expression. Only the root carries it.
type treeStats struct {
	Nodes       int      `json:"nodes"`
	Depth       int      `json:"depth"`
	Identifiers []string `json:"identifiers,omitempty"`
}

func statsOf(program ast.Node) *treeStats {
	stats := &treeStats{Depth: ast.Depth(program)}
	for range ast.Preorder(program) {
		stats.Nodes++
	}
	names := map[string]bool{}
	var collect func(ast.Node) bool
	collect = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			names[n.Name] = true
		case *ast.Keyword:
			// Keyword and attribute names are not variables.
			ast.Inspect(n.Value, collect)
			return false
		case *ast.Attr:
			ast.Inspect(n.X, collect)
			return false
		}
		return true
	}
	ast.Inspect(program, collect)
	stats.Identifiers = slices.Sorted(maps.Keys(names))
	return stats
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}
	result := &ASTNode{Type: reflect.TypeOf(node).Elem().Name()}

	switch n := node.(type) {
	case *ast.Ident:
		result.Value = n.Name
		return result
	case *ast.Number:
		if n.Float {
			result.Value = n.Value
		} else {
			result.Value = int64(n.Value)
		}
		return result
	case *ast.BinaryOp:
		result.Value = n.Op.String()
	case *ast.UnaryOp:
		result.Value = n.Op.String()
	case *ast.Compare:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		result.Value = strings.Join(ops, " ")
	case *ast.Attr:
		result.Value = n.Name.Name
		result.Children = append(result.Children, nodeToJSON(n.X))
		return result
	case *ast.Keyword:
		result.Value = n.Name.Name
		result.Children = append(result.Children, nodeToJSON(n.Value))
		return result
	}
	for _, child := range ast.Children(node) {
		result.Children = append(result.Children, nodeToJSON(child))
	}
	return result
}

var (
	nodeColor  = color.New(color.FgHiCyan, color.Bold)
	valueColor = color.New(color.FgHiGreen)
	mutedColor = color.New(color.FgHiBlack)
)

func printAST(w io.Writer, root *ASTNode, colored bool) {
	paint := func(c *color.Color, s string) string {
		if !colored {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	var printNode func(n *ASTNode, indent string, isLast, isRoot bool)
	printNode = func(n *ASTNode, indent string, isLast, isRoot bool) {
		var b strings.Builder
		childIndent := indent
		if !isRoot {
			branch, next := "├── ", "│   "
			if isLast {
				branch, next = "└── ", "    "
			}
			b.WriteString(paint(mutedColor, indent+branch))
			childIndent = indent + next
		}
		b.WriteString(paint(nodeColor, n.Type))
		if n.Value != nil {
			b.WriteString(" ")
			b.WriteString(paint(valueColor, formatValue(n.Value)))
		}
		fmt.Fprintln(w, b.String())
		for i, child := range n.Children {
			printNode(child, childIndent, i == len(n.Children)-1, false)
		}
	}
	printNode(root, "", true, true)
}

func printStats(w io.Writer, stats *treeStats, colored bool) {
	line := fmt.Sprintf("nodes: %d, depth: %d", stats.Nodes, stats.Depth)
	if len(stats.Identifiers) > 0 {
		line += ", identifiers: " + strings.Join(stats.Identifiers, ", ")
	}
	if colored {
		mutedColor.EnableColor()
		line = mutedColor.Sprint(line)
	}
	fmt.Fprintln(w, line)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
