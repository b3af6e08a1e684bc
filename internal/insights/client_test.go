package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func modelServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NotEmpty(t, r.Header.Get("x-goog-api-key"))
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func failingServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
}

func TestDescribeFood(t *testing.T) {
	srv := modelServer(t, `{"description": "A smoky double patty.", "funFact": "Burgers date back to Hamburg."}`)
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	insight := c.DescribeFood(context.Background(), "Supreme Beef Burger")
	require.Equal(t, "A smoky double patty.", insight.Description)
	require.Equal(t, "Burgers date back to Hamburg.", insight.FunFact)
}

func TestDescribeFoodStripsCodeFences(t *testing.T) {
	srv := modelServer(t, "```json\n{\"description\": \"Rich and warm.\", \"funFact\": \"Lava cakes were an accident.\"}\n```")
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	insight := c.DescribeFood(context.Background(), "Molten Lava Cake")
	require.Equal(t, "Rich and warm.", insight.Description)
}

func TestDescribeFoodFallback(t *testing.T) {
	srv := failingServer()
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	insight := c.DescribeFood(context.Background(), "Anything")
	require.Equal(t, FallbackDescription, insight.Description)
	require.Equal(t, FallbackFunFact, insight.FunFact)
}

func TestDescribeFoodFallbackOnGarbage(t *testing.T) {
	srv := modelServer(t, "sorry, I cannot help with that")
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	insight := c.DescribeFood(context.Background(), "Anything")
	require.Equal(t, FallbackDescription, insight.Description)
}

func TestDescribeFoodNoAPIKey(t *testing.T) {
	c := NewClient("", "")
	insight := c.DescribeFood(context.Background(), "Anything")
	require.Equal(t, FallbackDescription, insight.Description)
	require.Equal(t, FallbackFunFact, insight.FunFact)
}

func TestPolishText(t *testing.T) {
	srv := modelServer(t, "An absolutely delightful, piping-hot biryani!")
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	out := c.PolishText(context.Background(), "good biryani")
	require.Equal(t, "An absolutely delightful, piping-hot biryani!", out)
}

func TestPolishTextFallbackReturnsInput(t *testing.T) {
	srv := failingServer()
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	out := c.PolishText(context.Background(), "good biryani")
	require.Equal(t, "good biryani", out)
}

func TestSuggestPairingFallback(t *testing.T) {
	srv := failingServer()
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	out := c.SuggestPairing(context.Background(), []string{"Pepperoni Feast Pizza"})
	require.Equal(t, FallbackSuggestion, out)
}

func TestCheckDeliveryArea(t *testing.T) {
	srv := modelServer(t, `{"text": "Yes, we deliver near Clifton Beach.", "links": [{"title": "QuickBite Clifton", "uri": "https://maps.example/clifton"}]}`)
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	result := c.CheckDeliveryArea(context.Background(), "Clifton, Karachi")
	require.Equal(t, "Yes, we deliver near Clifton Beach.", result.Text)
	require.Len(t, result.Links, 1)
	require.Equal(t, "QuickBite Clifton", result.Links[0].Title)
}

func TestCheckDeliveryAreaFallback(t *testing.T) {
	srv := failingServer()
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	result := c.CheckDeliveryArea(context.Background(), "Anywhere")
	require.Equal(t, FallbackAreaText, result.Text)
	require.Empty(t, result.Links)
	require.NotNil(t, result.Links)
}
