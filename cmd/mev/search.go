package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/nav"
	"github.com/nikbrunner/mev/internal/query"
	"github.com/nikbrunner/mev/internal/search"
)

func (c *cli) newSearchCmd() *cobra.Command {
	var (
		facets []string
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Print one page of search results",
		Example: `  mev search pizza
  mev search pizza --facet flavor=1 --facet flavor=2 --facet price=1
  mev search pizza --cursor 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			q, err := facetQuery(keyword, facets)
			if err != nil {
				return err
			}

			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}

			s := search.NewSynchronizer(nav.NewRouter(q))
			page := search.Run(cmd.Context(), client, search.Request{
				Mode:   s.Mode(),
				Query:  s.QueryString(),
				Cursor: cursor,
			})
			if page.Err != nil {
				return fmt.Errorf("search %q: %w", page.Query, page.Err)
			}

			if len(page.Items) == 0 {
				fmt.Fprintln(os.Stderr, "no results")
				return nil
			}
			fmt.Println(resultsTable(page.Items))
			if last := page.Items[len(page.Items)-1]; !last.Last {
				fmt.Fprintf(os.Stderr, "next page: --cursor %s\n", last.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&facets, "facet", nil, "facet selection as key=option, repeatable")
	cmd.Flags().StringVar(&cursor, "cursor", search.FirstCursor, "ID of the last item of the previous page")
	return cmd
}

// facetQuery builds the location for a keyword and key=option selections.
// Repeated keys accumulate, duplicates are ignored.
func facetQuery(keyword string, facets []string) (query.Query, error) {
	q := query.ForKeyword(keyword)
	for _, raw := range facets {
		key, option, err := splitPair(raw)
		if err != nil {
			return query.Query{}, err
		}
		f, ok := model.FacetByKey(key)
		if !ok {
			return query.Query{}, fmt.Errorf("unknown facet %q", key)
		}
		if _, ok := f.Option(option); !ok {
			return query.Query{}, fmt.Errorf("facet %q has no option %q", key, option)
		}
		if !q.Get(key).Contains(option) {
			q.Toggle(key, option)
		}
	}
	return q, nil
}

// splitPair parses "key=value".
func splitPair(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", raw)
	}
	return key, value, nil
}

func resultsTable(items []model.MenuItem) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "MENU", "RESTAURANT", "FACETS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, it := range items {
		t.Row(it.ID, it.MenuName, it.RestaurantName, facetSummary(it))
	}
	return t.Render()
}

// facetSummary lists the option labels of an item in catalog order.
func facetSummary(it model.MenuItem) string {
	var parts []string
	for _, f := range model.Facets() {
		id, ok := it.Facets[f.Key]
		if !ok {
			continue
		}
		if o, ok := f.Option(id); ok {
			parts = append(parts, o.Label)
		}
	}
	return strings.Join(parts, " · ")
}
