package googleplaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/ports/places"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Goog-Api-Key") != "k" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.allowsDogs")

		switch r.URL.Path {
		case "/v1/places:searchNearby":
			var req nearbyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"dog_cafe", "cat_cafe", "restaurant"}, req.IncludedTypes)
			assert.Equal(t, 20, req.MaxResultCount)
			assert.Equal(t, 1000.0, req.LocationRestriction.Circle.Radius)
			assert.Equal(t, 25.03, req.LocationRestriction.Circle.Center.Latitude)

			_, _ = w.Write([]byte(`{"places":[
				{"displayName":{"text":"Woof Cafe"},"formattedAddress":"1 Dog St","rating":4.5,"allowsDogs":true,"location":{"latitude":25.04,"longitude":121.5}},
				{"displayName":{"text":"No Dogs Diner"},"formattedAddress":"2 Cat St","rating":4.9,"allowsDogs":false,"location":{"latitude":25.05,"longitude":121.6}},
				{"displayName":{"text":"Bark Bistro"},"formattedAddress":"3 Paw Rd","allowsDogs":true,"location":{"latitude":25.06,"longitude":121.7}}
			]}`))
		case "/v1/places:searchText":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req["textQuery"] == "Taipei 101" {
				_, _ = w.Write([]byte(`{"places":[{"location":{"latitude":25.0339,"longitude":121.5645}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFindNearbyDogFriendlyPlaces(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "k"})
	require.NoError(t, err)

	got, err := c.FindNearbyDogFriendlyPlaces(context.Background(), 25.03, 121.56)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Woof Cafe", got[0].Name)
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 4.5, *got[0].Rating)
	assert.Nil(t, got[1].Rating)
	assert.Equal(t, 121.7, got[1].Lon)
}

func TestResolvePlaceName(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "k"})
	require.NoError(t, err)

	lat, lon, err := c.ResolvePlaceName(context.Background(), "Taipei 101")
	require.NoError(t, err)
	assert.Equal(t, 25.0339, lat)
	assert.Equal(t, 121.5645, lon)

	_, _, err = c.ResolvePlaceName(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, places.ErrNotFound)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c, err := NewClient(Config{BaseURL: ts.URL})
	require.NoError(t, err)
	_, err = c.FindNearbyDogFriendlyPlaces(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err = NewClient(Config{BaseURL: ts.URL, APIKey: "wrong"})
	require.NoError(t, err)
	_, err = c.FindNearbyDogFriendlyPlaces(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUpstream)
}
