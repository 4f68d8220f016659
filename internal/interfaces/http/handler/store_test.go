package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	partnerapp "github.com/flower8718/backend/internal/application/partner"
	"github.com/flower8718/backend/internal/domain/partner"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

type fakeStoreRepo struct {
	stores map[uint]*partner.Store
	nextID uint
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[uint]*partner.Store), nextID: 1}
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uint) (*partner.Store, error) {
	if store, ok := r.stores[id]; ok {
		copied := *store
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) FindActive(_ context.Context) ([]partner.Store, error) {
	var out []partner.Store
	for _, store := range r.stores {
		if store.IsActive {
			out = append(out, *store)
		}
	}
	sortStores(out)
	return out, nil
}

func (r *fakeStoreRepo) FindAll(_ context.Context) ([]partner.Store, error) {
	var out []partner.Store
	for _, store := range r.stores {
		out = append(out, *store)
	}
	sortStores(out)
	return out, nil
}

func (r *fakeStoreRepo) Save(_ context.Context, store *partner.Store) error {
	if store.ID == 0 {
		store.ID = r.nextID
		r.nextID++
	}
	copied := *store
	r.stores[store.ID] = &copied
	return nil
}

func (r *fakeStoreRepo) UpdateSortOrders(_ context.Context, orders map[uint]int) error {
	for id, order := range orders {
		if store, ok := r.stores[id]; ok {
			store.SortOrder = order
		}
	}
	return nil
}

func sortStores(stores []partner.Store) {
	sort.Slice(stores, func(i, j int) bool {
		if stores[i].SortOrder != stores[j].SortOrder {
			return stores[i].SortOrder < stores[j].SortOrder
		}
		return stores[i].ID < stores[j].ID
	})
}

func newStoreTestRouter() (*gin.Engine, *fakeStoreRepo) {
	gin.SetMode(gin.TestMode)
	repo := newFakeStoreRepo()
	h := NewStoreHandler(partnerapp.NewStoreService(repo))

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStoreHandlerCreate(t *testing.T) {
	t.Run("valid request creates a store", func(t *testing.T) {
		engine, repo := newStoreTestRouter()

		rec := doJSON(t, engine, http.MethodPost, "/api/v1/stores", gin.H{
			"name":           "本店",
			"operation_type": "headquarters",
			"store_type":     "store",
			"color":          "#E53935",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)

		stored, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "本店", stored.Name)
		assert.True(t, stored.IsActive)
	})

	t.Run("binding failure is a 400", func(t *testing.T) {
		engine, _ := newStoreTestRouter()

		rec := doJSON(t, engine, http.MethodPost, "/api/v1/stores", gin.H{
			"name":           "本店",
			"operation_type": "somewhere",
			"store_type":     "store",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

func TestStoreHandlerGet(t *testing.T) {
	engine, repo := newStoreTestRouter()
	store := &partner.Store{Name: "駅前店", OperationType: "franchise", StoreType: "store", IsActive: true}
	require.NoError(t, repo.Save(context.Background(), store))

	t.Run("found", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stores/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stores/42", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stores/zero", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStoreHandlerList(t *testing.T) {
	engine, repo := newStoreTestRouter()
	ctx := context.Background()

	active := &partner.Store{Name: "本店", OperationType: "headquarters", StoreType: "store", IsActive: true}
	closed := &partner.Store{Name: "旧北口店", OperationType: "franchise", StoreType: "store", IsActive: false}
	require.NoError(t, repo.Save(ctx, active))
	require.NoError(t, repo.Save(ctx, closed))

	t.Run("active only by default", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stores", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 1)
	})

	t.Run("include_inactive widens the list", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/api/v1/stores?include_inactive=true", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})
}

func TestStoreHandlerDeactivate(t *testing.T) {
	engine, repo := newStoreTestRouter()
	ctx := context.Background()
	store := &partner.Store{Name: "本店", OperationType: "headquarters", StoreType: "store", IsActive: true}
	require.NoError(t, repo.Save(ctx, store))

	rec := doJSON(t, engine, http.MethodDelete, "/api/v1/stores/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestStoreHandlerSortOrders(t *testing.T) {
	engine, repo := newStoreTestRouter()
	ctx := context.Background()
	first := &partner.Store{Name: "本店", OperationType: "headquarters", StoreType: "store", IsActive: true, SortOrder: 1}
	second := &partner.Store{Name: "駅前店", OperationType: "franchise", StoreType: "store", IsActive: true, SortOrder: 2}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	rec := doJSON(t, engine, http.MethodPut, "/api/v1/stores/sort-orders", gin.H{
		"orders": map[string]int{"1": 2, "2": 1},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SortOrder)
}
