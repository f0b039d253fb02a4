package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/mev/internal/api"
	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/picker"
)

func (c *cli) newRestaurantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurant",
		Short: "Manage restaurants",
	}

	var address string
	add := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Register a restaurant, or show the stored one with the same ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			r, err := client.FindRestaurant(cmd.Context(), model.Restaurant{
				RestaurantID: args[0],
				Name:         args[1],
				Address:      address,
			})
			if err != nil {
				return fmt.Errorf("find restaurant: %w", err)
			}
			fmt.Printf("%s\t%s\t%s\n", r.RestaurantID, r.Name, r.Address)
			return nil
		},
	}
	add.Flags().StringVar(&address, "address", "", "street address")

	cmd.AddCommand(add)
	return cmd
}

func (c *cli) newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List and add the menus of a restaurant",
	}

	list := &cobra.Command{
		Use:   "list <restaurant-id>",
		Short: "List the menus of a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			menus, err := client.Dishes(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list menus: %w", err)
			}
			if len(menus) == 0 {
				fmt.Fprintln(os.Stderr, "no menus")
			}
			for _, m := range menus {
				fmt.Printf("%s\t%s\n", m.MenuID, m.MenuName)
			}
			return nil
		},
	}

	var image string
	add := &cobra.Command{
		Use:   "add <restaurant-id> <name>",
		Short: "Add a menu to a restaurant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadUpload(image)
			if err != nil {
				return err
			}
			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			m, err := client.AddMenu(cmd.Context(), args[0], args[1], img)
			if err != nil {
				return fmt.Errorf("add menu: %w", err)
			}
			fmt.Printf("Added %s (%s)\n", m.MenuName, m.MenuID)
			return nil
		},
	}
	add.Flags().StringVar(&image, "image", "", "picture of the dish")

	cmd.AddCommand(list, add)
	return cmd
}

func (c *cli) newEvaluateCmd() *cobra.Command {
	var (
		menuID  string
		scores  []string
		comment string
		image   string
	)

	cmd := &cobra.Command{
		Use:   "evaluate <restaurant-id>",
		Short: "Submit an evaluation of a menu",
		Long: `Submits one option per facet for a menu. Without --menu the menus of the
restaurant are offered in a picker.`,
		Example: `  mev evaluate r-1 --menu m-1 --score flavor=2 --score spiciness=1 --comment "또 올게요"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := parseEvaluation(scores, comment)
			if err != nil {
				return err
			}
			img, err := loadUpload(image)
			if err != nil {
				return err
			}

			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}

			restaurantID := args[0]
			if menuID == "" {
				if menuID, err = pickMenu(cmd.Context(), client, restaurantID); err != nil {
					return err
				}
			}

			if err := client.SubmitEvaluation(cmd.Context(), menuID, restaurantID, ev, img); err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			fmt.Printf("Evaluated menu %s\n", menuID)
			return nil
		},
	}

	cmd.Flags().StringVar(&menuID, "menu", "", "menu ID (picked interactively when empty)")
	cmd.Flags().StringArrayVar(&scores, "score", nil, "facet score as key=option, repeatable")
	cmd.Flags().StringVar(&comment, "comment", "", "free text comment")
	cmd.Flags().StringVar(&image, "image", "", "picture of the dish")
	return cmd
}

// parseEvaluation builds an evaluation from key=option scores.
func parseEvaluation(scores []string, comment string) (model.Evaluation, error) {
	ev := model.Evaluation{Scores: make(map[string]string, len(scores)), Comment: comment}
	for _, raw := range scores {
		key, option, err := splitPair(raw)
		if err != nil {
			return model.Evaluation{}, err
		}
		if _, dup := ev.Scores[key]; dup {
			return model.Evaluation{}, fmt.Errorf("facet %q scored twice", key)
		}
		ev.Scores[key] = option
	}
	if err := ev.Validate(); err != nil {
		return model.Evaluation{}, err
	}
	return ev, nil
}

// pickMenu lets the user choose one of the menus of a restaurant.
func pickMenu(ctx context.Context, client *api.Client, restaurantID string) (string, error) {
	menus, err := client.Dishes(ctx, restaurantID)
	if err != nil {
		return "", fmt.Errorf("list menus: %w", err)
	}
	if len(menus) == 0 {
		return "", fmt.Errorf("restaurant %s has no menus, add one with: mev menu add", restaurantID)
	}

	entries := make([]picker.Entry, len(menus))
	for i, m := range menus {
		entries[i] = picker.Entry{Title: m.MenuName, Detail: m.MenuID}
	}

	final, err := tea.NewProgram(picker.New("Menu", entries)).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	idx, ok := final.(picker.Picker).Selected()
	if !ok {
		return "", errPromptCancelled
	}
	return menus[idx].MenuID, nil
}

// loadUpload reads an image file for a multipart request. An empty path
// means no picture.
func loadUpload(path string) (api.Upload, error) {
	if path == "" {
		return api.Upload{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return api.Upload{}, fmt.Errorf("read image: %w", err)
	}
	mt := mimetype.Detect(data)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") && !mt.Is("image/gif") && !mt.Is("image/webp") {
		return api.Upload{}, fmt.Errorf("%s is %s, not an image", path, mt.String())
	}
	return api.Upload{
		Name:        filepath.Base(path),
		ContentType: mt.String(),
		Data:        bytes.NewReader(data),
	}, nil
}
