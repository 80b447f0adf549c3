package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-city-weather/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.GeoDBConfig{
		APIKey:  "test-key",
		Host:    "wft-geo-db.p.rapidapi.com",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestClient_Search(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "wft-geo-db.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		assert.Equal(t, "Berlin", r.URL.Query().Get("namePrefix"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "-population", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":8383,"city":"Berlin","country":"Germany","region":"Land Berlin","population":3664088,"latitude":52.52,"longitude":13.405},
			{"id":123214,"city":"Berlin","country":"United States of America","region":"New Hampshire"}
		]}`))
	})

	cities, err := c.Search(context.Background(), "Berlin", 5)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	first := cities[0]
	assert.Equal(t, "8383", first.ID)
	assert.Equal(t, "Berlin", first.Name)
	assert.Equal(t, "Germany", first.Country)
	assert.Equal(t, "Land Berlin", first.Region)
	require.NotNil(t, first.Population)
	assert.EqualValues(t, 3664088, *first.Population)
	assert.True(t, first.HasCoordinates())

	second := cities[1]
	assert.Nil(t, second.Population)
	assert.False(t, second.HasCoordinates())
}

func TestClient_Details(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities/8383", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":8383,"name":"Berlin","country":"Germany","region":"Land Berlin","population":3769495,"latitude":52.52,"longitude":13.405}}`))
	})

	city, err := c.Details(context.Background(), "8383")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", city.Name)
	require.NotNil(t, city.Population)
	assert.EqualValues(t, 3769495, *city.Population)
}

func TestClient_TopByPopulation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("namePrefix"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"city":"Tokyo","country":"Japan","population":37400068}]}`))
	})

	cities, err := c.TopByPopulation(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Tokyo", cities[0].Name)
}

func TestClient_HTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "Berlin", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(config.GeoDBConfig{})
	require.Error(t, err)
}
