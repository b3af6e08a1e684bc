package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodhub75/Food-App/internal/models"
)

func TestListReviewsSeeded(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/reviews", nil)
	require.NoError(t, env.Reviews.ListReviews(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 3)
	// newest first
	require.Equal(t, "Zoe M.", reviews[0].Name)
}

func TestCreateReviewDefaults(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"comment": "Great biryani!"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews", payload)
	require.NoError(t, env.Reviews.CreateReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var review models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	require.Equal(t, "Guest User", review.Name)
	require.Equal(t, 5, review.Rating)
	require.Equal(t, "Just Now", review.Location)
}

func TestCreateReviewWithOrderContext(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":    "Sana",
		"rating":  4,
		"comment": "Arrived hot.",
		"context": "Order #QB-12345678",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews", payload)
	require.NoError(t, env.Reviews.CreateReview(c))

	var review models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	require.Equal(t, "[Order #QB-12345678] Arrived hot.", review.Comment)
	require.Equal(t, 4, review.Rating)
}

func TestPolishReviewFallsBackToInput(t *testing.T) {
	env := newTestEnv(t)

	// no API key configured, so the text service always fails over
	payload := map[string]string{"text": "good food"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/polish", payload)
	require.NoError(t, env.Reviews.PolishReview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "good food", resp["text"])
}
