package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nikbrunner/mev/internal/model"
)

// Upload is an image attached to a multipart request. A nil Data sends no
// picture.
type Upload struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// FindRestaurant registers r or returns the stored restaurant with the same
// ID.
func (c *Client) FindRestaurant(ctx context.Context, r model.Restaurant) (model.Restaurant, error) {
	var out model.Restaurant
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(r).
		SetResult(&out).
		Post("/evaluate/find-restaurant")
	if err := c.check(resp, err); err != nil {
		return model.Restaurant{}, err
	}
	return out, nil
}

// Dishes lists the menus of a restaurant. Lists are cached until AddMenu.
func (c *Client) Dishes(ctx context.Context, restaurantID string) ([]model.Menu, error) {
	if c.dishes != nil {
		if menus, ok := c.dishes.Get(restaurantID); ok {
			return menus, nil
		}
	}

	var menus []model.Menu
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("restaurantId", restaurantID).
		SetResult(&menus).
		Get("/evaluate/menu/{restaurantId}")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	if c.dishes != nil {
		c.dishes.Add(restaurantID, menus)
	}
	return menus, nil
}

// AddMenu creates a menu with its picture.
func (c *Client) AddMenu(ctx context.Context, restaurantID, menuName string, img Upload) (model.Menu, error) {
	var out model.Menu
	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"restaurantId": restaurantID,
			"menuName":     menuName,
		}).
		SetResult(&out)
	if img.Data != nil {
		req.SetMultipartField("file", img.Name, img.ContentType, img.Data)
	}
	resp, err := req.Post("/menu")
	if err := c.check(resp, err); err != nil {
		return model.Menu{}, err
	}

	if c.dishes != nil {
		c.dishes.Remove(restaurantID)
	}
	if c.pages != nil {
		c.pages.Purge()
	}
	return out, nil
}

// SubmitEvaluation posts an evaluation of menuID. The result travels as a
// JSON part named resultDto next to the picture.
func (c *Client) SubmitEvaluation(ctx context.Context, menuID, restaurantID string, result model.Evaluation, img Upload) error {
	if err := result.Validate(); err != nil {
		return err
	}
	dto, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("menuId", menuID).
		SetMultipartFormData(map[string]string{"restaurantId": restaurantID}).
		SetMultipartField("resultDto", "resultDto.json", "application/json", bytes.NewReader(dto))
	if img.Data != nil {
		req.SetMultipartField("file", img.Name, img.ContentType, img.Data)
	}
	resp, err := req.Post("/evaluate/{menuId}")
	if err := c.check(resp, err); err != nil {
		return err
	}

	// facet values changed, cached filter pages are stale
	if c.pages != nil {
		c.pages.Purge()
	}
	return nil
}
