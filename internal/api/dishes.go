package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"foodexplorer/internal/domain"
)

// CreateDish submits a new dish as one multipart request: the image
// file, the scalar fields, and one "ingredients" entry per ingredient
// in insertion order.
func (c *Client) CreateDish(ctx context.Context, dish *domain.NewDish) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("image", dish.Image.Name)
	if err != nil {
		return fmt.Errorf("api: build dish form: %w", err)
	}
	if _, err := io.Copy(part, dish.Image.Data); err != nil {
		return fmt.Errorf("api: read dish image: %w", err)
	}

	fields := map[string]string{
		"title":       dish.Title,
		"description": dish.Description,
		"category":    dish.Category.String(),
		"price":       dish.Price,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("api: write field %s: %w", name, err)
		}
	}
	for _, ingredient := range dish.Ingredients {
		if err := form.WriteField("ingredients", ingredient); err != nil {
			return fmt.Errorf("api: write ingredient: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("api: close dish form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/dishes", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	if err := c.do(req, nil); err != nil {
		return err
	}
	c.log.Info("created dish %q", dish.Title)
	return nil
}

// GetDish fetches a single dish record by ID.
func (c *Client) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/dishes/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	var dish domain.Dish
	if err := c.do(req, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}
