package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hovo33651/shoppingcart-backend/api/middleware"
	"github.com/hovo33651/shoppingcart-backend/internal/authz"
	ordersvc "github.com/hovo33651/shoppingcart-backend/internal/orders"
	productsvc "github.com/hovo33651/shoppingcart-backend/internal/products"
	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
)

type fakeOrderService struct {
	createFn       func(ctx context.Context, actor authz.Principal, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error)
	changeStatusFn func(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*ordersvc.OrderDTO, error)
	findFn         func(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error)
}

func (f *fakeOrderService) Create(ctx context.Context, actor authz.Principal, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	if f.createFn != nil {
		return f.createFn(ctx, actor, input)
	}
	return &ordersvc.OrderDTO{}, nil
}

func (f *fakeOrderService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (f *fakeOrderService) FindByID(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	if f.findFn != nil {
		return f.findFn(ctx, orderID)
	}
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (f *fakeOrderService) ChangeStatus(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*ordersvc.OrderDTO, error) {
	if f.changeStatusFn != nil {
		return f.changeStatusFn(ctx, actor, orderID, newStatus)
	}
	return &ordersvc.OrderDTO{ID: orderID, Status: newStatus}, nil
}

func (f *fakeOrderService) Delete(ctx context.Context, actor authz.Principal, orderID uuid.UUID) error {
	return nil
}

type fakeProductService struct {
	listFn   func(ctx context.Context, input productsvc.ListProductsInput) ([]productsvc.ProductDTO, error)
	createFn func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error)
}

func (f *fakeProductService) Create(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	if f.createFn != nil {
		return f.createFn(ctx, input)
	}
	return &productsvc.ProductDTO{}, nil
}

func (f *fakeProductService) Update(ctx context.Context, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID}, nil
}

func (f *fakeProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return nil
}

func (f *fakeProductService) Get(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID}, nil
}

func (f *fakeProductService) List(ctx context.Context, input productsvc.ListProductsInput) ([]productsvc.ProductDTO, error) {
	if f.listFn != nil {
		return f.listFn(ctx, input)
	}
	return []productsvc.ProductDTO{}, nil
}

func authedContext(ctx context.Context, userID uuid.UUID, role enums.UserRole) context.Context {
	ctx = middleware.WithUserID(ctx, userID.String())
	return middleware.WithRole(ctx, string(role))
}

func serveOrderRoute(handler http.HandlerFunc, method, path string, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, path, handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderRejectsMalformedProductID(t *testing.T) {
	svc := &fakeOrderService{
		createFn: func(ctx context.Context, actor authz.Principal, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	handler := CreateOrder(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"product_id":"not-a-uuid","quantity":1}`))
	req = req.WithContext(authedContext(req.Context(), uuid.New(), enums.UserRoleCustomer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateOrderRejectsMissingPrincipal(t *testing.T) {
	handler := CreateOrder(&fakeOrderService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"product_id":"`+uuid.NewString()+`","quantity":1}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestChangeOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := &fakeOrderService{
		changeStatusFn: func(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*ordersvc.OrderDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	handler := ChangeOrderStatus(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"TELEPORTED"}`))
	req = req.WithContext(authedContext(req.Context(), uuid.New(), enums.UserRoleAdmin))
	rec := serveOrderRoute(handler, http.MethodPut, "/orders/{orderId}/status", req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestChangeOrderStatusPassesParsedStatus(t *testing.T) {
	var gotStatus enums.OrderStatus
	svc := &fakeOrderService{
		changeStatusFn: func(ctx context.Context, actor authz.Principal, orderID uuid.UUID, newStatus enums.OrderStatus) (*ordersvc.OrderDTO, error) {
			gotStatus = newStatus
			return &ordersvc.OrderDTO{ID: orderID, Status: newStatus}, nil
		},
	}
	handler := ChangeOrderStatus(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"SHIPPED"}`))
	req = req.WithContext(authedContext(req.Context(), uuid.New(), enums.UserRoleAdmin))
	rec := serveOrderRoute(handler, http.MethodPut, "/orders/{orderId}/status", req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if gotStatus != enums.OrderStatusShipped {
		t.Fatalf("expected SHIPPED got %s", gotStatus)
	}
}

func TestGetOrderDeniesStranger(t *testing.T) {
	owner := uuid.New()
	svc := &fakeOrderService{
		findFn: func(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
			return &ordersvc.OrderDTO{ID: orderID, OwnerID: owner}, nil
		},
	}
	handler := GetOrder(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	req = req.WithContext(authedContext(req.Context(), uuid.New(), enums.UserRoleCustomer))
	rec := serveOrderRoute(handler, http.MethodGet, "/orders/{orderId}", req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestListProductsParsesFilters(t *testing.T) {
	var gotInput productsvc.ListProductsInput
	svc := &fakeProductService{
		listFn: func(ctx context.Context, input productsvc.ListProductsInput) ([]productsvc.ProductDTO, error) {
			gotInput = input
			return []productsvc.ProductDTO{}, nil
		},
	}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?keyword=phone&type=ELECTRONICS&sort_by=price&sort_dir=desc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if gotInput.Keyword != "phone" || gotInput.SortBy != "price" || gotInput.SortDir != "desc" {
		t.Fatalf("filters not forwarded: %+v", gotInput)
	}
	if gotInput.Type == nil || *gotInput.Type != enums.ProductTypeElectronics {
		t.Fatalf("type filter not parsed: %+v", gotInput.Type)
	}
}

func TestListProductsRejectsUnknownType(t *testing.T) {
	handler := ListProducts(&fakeProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?type=GADGETS", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	svc := &fakeProductService{
		createFn: func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	handler := CreateProduct(svc, nil)

	for _, price := range []string{"abc", "-1.50"} {
		body := `{"name":"Widget","type":"ELECTRONICS","price":"` + price + `","count_in_stock":1}`
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("price %q: expected 400 got %d body=%s", price, rec.Code, rec.Body.String())
		}
	}
}

func TestCreateProductForwardsParsedInput(t *testing.T) {
	var gotInput productsvc.CreateProductInput
	svc := &fakeProductService{
		createFn: func(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			gotInput = input
			return &productsvc.ProductDTO{}, nil
		},
	}
	handler := CreateProduct(svc, nil)

	body := `{"name":"Widget","description":"small","type":"TOYS","price":"12.50","count_in_stock":4}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	if gotInput.Name != "Widget" || gotInput.Type != enums.ProductTypeToys || gotInput.CountInStock != 4 {
		t.Fatalf("input not forwarded: %+v", gotInput)
	}
	if gotInput.Price.String() != "12.5" {
		t.Fatalf("price not parsed: %s", gotInput.Price)
	}
}
