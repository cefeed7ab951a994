package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-gateway/internal/models"
)

func TestListOrders_RawArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		w.Write([]byte(`[{"id":1,"status":"UNASSIGNED"},{"id":2,"status":"ASSIGNED"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	orders, meta, err := c.ListOrders(context.Background(), OrderQuery{})
	require.NoError(t, err)
	assert.Nil(t, meta)
	require.Len(t, orders, 2)
	assert.Equal(t, models.OrderUnassigned, orders[0].Status)
}

func TestListOrders_EnvelopedWithPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELIVERED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":[{"id":3,"status":"DELIVERED"}],"current_page":2,"last_page":5,"total":94,"per_page":20}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	orders, meta, err := c.ListOrders(context.Background(), OrderQuery{Status: "DELIVERED", Page: 2})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 5, meta.LastPage)
	assert.Equal(t, 94, meta.Total)
	assert.Equal(t, 20, meta.PerPage)
}

func TestListOrders_EnvelopedWithoutPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"status":"UNASSIGNED"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	orders, meta, err := c.ListOrders(context.Background(), OrderQuery{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Nil(t, meta, "no meta when the envelope has no page fields")
}

func TestListRiders_BranchScopeAndBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fleet-token", r.Header.Get("Authorization"))
		assert.Equal(t, "7", r.URL.Query().Get("branch_id"))
		w.Write([]byte(`{"data":[{"id":9,"name":"Amir","status":"IDLE"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("fleet-token")

	branchID := int64(7)
	riders, err := c.ListRiders(context.Background(), &branchID)
	require.NoError(t, err)
	require.Len(t, riders, 1)
	assert.Equal(t, models.RiderIdle, riders[0].Status)
}

func TestAssignOrder_PostsRiderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/42/assign", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"rider_id":9}`, string(body))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.AssignOrder(context.Background(), 42, 9))
}

func TestUpdateOrderStatus_ReasonOnlyWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = string(body)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	require.NoError(t, c.UpdateOrderStatus(context.Background(), 1, models.OrderFailed, "customer unavailable"))
	assert.JSONEq(t, `{"status":"FAILED","reason":"customer unavailable"}`, got)

	require.NoError(t, c.UpdateOrderStatus(context.Background(), 1, models.OrderFailed, ""))
	assert.JSONEq(t, `{"status":"FAILED"}`, got)
}

func TestUnauthorized_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("stale")

	_, err := c.ListRiders(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, c.Token())
}

func TestNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetRider(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestServerError_WrapsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"rider is offline"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.AssignOrder(context.Background(), 1, 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "rider is offline")
}

func TestLogin_TopLevelToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "admin@example.com", payload["email"])
		w.Write([]byte(`{"token":"abc123","user":{"id":1,"name":"Admin","email":"admin@example.com"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Admin", user.Name)
	assert.Equal(t, "abc123", c.Token())
}

func TestLogin_EnvelopedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"token":"xyz789","user":{"id":2,"email":"ops@example.com"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	user, err := c.Login(context.Background(), "ops@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "xyz789", c.Token())
}

func TestLogin_MissingTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "admin@example.com", "secret")
	assert.Error(t, err)
}

func TestLogout_ClearsTokenEvenOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("abc")
	assert.Error(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestGetSettings_Enveloped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings", r.URL.Path)
		w.Write([]byte(`{"data":{"restaurant_name":"Lahore Grill","opening_time":"11:00","closing_time":"23:00"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	settings, err := c.GetSettings(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Lahore Grill", settings.RestaurantName)
	assert.Equal(t, "23:00", settings.ClosingTime)
}
