package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/logger"
	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Cart     service.CartServiceInterface
	Orders   service.OrderServiceInterface
	Profiles service.ProfileServiceInterface
	Auth     *Authenticator
	Log      *logger.Logger
}

func NewHandler(catalog service.CatalogServiceInterface, cart service.CartServiceInterface, orders service.OrderServiceInterface, profiles service.ProfileServiceInterface, auth *Authenticator, log *logger.Logger) *Handler {
	return &Handler{
		Catalog:  catalog,
		Cart:     cart,
		Orders:   orders,
		Profiles: profiles,
		Auth:     auth,
		Log:      log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	if h.Auth != nil {
		api.Use(h.Auth.Middleware)
	}

	api.HandleFunc("/categories", h.getCategories).Methods("GET")
	api.HandleFunc("/categories", h.createCategory).Methods("POST")
	api.HandleFunc("/menu-items", h.getMenuItems).Methods("GET")
	api.HandleFunc("/menu-items", h.createMenuItem).Methods("POST")
	api.HandleFunc("/menu-items/{id:[0-9]+}", h.getMenuItem).Methods("GET")

	api.HandleFunc("/cart", h.getCart).Methods("GET")
	api.HandleFunc("/cart", h.addToCart).Methods("POST")

	api.HandleFunc("/orders", h.getOrders).Methods("GET")
	api.HandleFunc("/orders", h.placeOrder).Methods("POST")
	api.HandleFunc("/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}/qrcode", h.getOrderQRCode).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}/delivery-crew", h.assignDeliveryCrew).Methods("PATCH")

	api.HandleFunc("/profile", h.getProfile).Methods("GET")
	api.HandleFunc("/profile", h.updateProfile).Methods("PATCH")

	api.HandleFunc("/users/{id:[0-9]+}/manager", h.assignManager).Methods("PATCH")
	api.HandleFunc("/users/{id:[0-9]+}/delivery-crew", h.grantDeliveryCrew).Methods("PATCH")
	api.HandleFunc("/users/{id:[0-9]+}/role", h.revokeRole).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// fail writes err and logs it when it is not a client error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	if kind := domain.ErrorKind(err); kind == "internal" || kind == "transaction_failed" {
		h.Log.Error(action, logger.RequestID(r.Context()), "request failed", err)
	}
	WriteError(w, err)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "list_categories", err)
		return
	}
	JSONResponse(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := decode(r, &category); err != nil {
		h.fail(w, r, "create_category", err)
		return
	}
	if err := h.Catalog.CreateCategory(r.Context(), IdentityFrom(r.Context()), &category); err != nil {
		h.fail(w, r, "create_category", err)
		return
	}
	JSONResponse(w, http.StatusCreated, category)
}

func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MenuFilter{
		CategoryID: queryInt(r, "category"),
		Search:     q.Get("search"),
		Ordering:   q.Get("ordering"),
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "perpage"),
	}
	page, err := h.Catalog.ListMenuItems(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "list_menu_items", err)
		return
	}
	JSONResponse(w, http.StatusOK, page)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.GetMenuItem(r.Context(), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "get_menu_item", err)
		return
	}
	JSONResponse(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title    string          `json:"title"`
		Price    decimal.Decimal `json:"price"`
		Category int             `json:"category"`
	}
	if err := decode(r, &payload); err != nil {
		h.fail(w, r, "create_menu_item", err)
		return
	}
	item := domain.MenuItem{Title: payload.Title, Price: payload.Price, CategoryID: payload.Category}
	if err := h.Catalog.CreateMenuItem(r.Context(), IdentityFrom(r.Context()), &item); err != nil {
		h.fail(w, r, "create_menu_item", err)
		return
	}
	JSONResponse(w, http.StatusCreated, item)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Cart.ListEntries(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "list_cart", err)
		return
	}
	JSONResponse(w, http.StatusOK, entries)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MenuItem json.Number `json:"menuitem"`
		Quantity json.Number `json:"quantity"`
	}
	if err := decode(r, &payload); err != nil {
		h.fail(w, r, "add_to_cart", err)
		return
	}
	menuItemID, err := strconv.Atoi(payload.MenuItem.String())
	if err != nil {
		h.fail(w, r, "add_to_cart", fmt.Errorf("%w: menuitem must be an integer id", domain.ErrInvalidInput))
		return
	}
	quantity, err := strconv.Atoi(payload.Quantity.String())
	if err != nil {
		h.fail(w, r, "add_to_cart", fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidQuantity, payload.Quantity.String()))
		return
	}

	entry, err := h.Cart.AddOrUpdateEntry(r.Context(), IdentityFrom(r.Context()), menuItemID, quantity)
	if err != nil {
		h.fail(w, r, "add_to_cart", err)
		return
	}
	JSONResponse(w, http.StatusCreated, entry)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListOrders(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "list_orders", err)
		return
	}
	JSONResponse(w, http.StatusOK, orders)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.PlaceOrder(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "place_order", err)
		return
	}
	JSONResponse(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "get_order", err)
		return
	}
	JSONResponse(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.ReceiptQR(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "order_qrcode", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) assignDeliveryCrew(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DeliveryCrew int `json:"delivery_crew"`
	}
	if err := decode(r, &payload); err != nil {
		h.fail(w, r, "assign_delivery_crew", err)
		return
	}
	order, err := h.Orders.AssignDeliveryCrew(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"), payload.DeliveryCrew)
	if err != nil {
		h.fail(w, r, "assign_delivery_crew", err)
		return
	}
	JSONResponse(w, http.StatusOK, order)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.GetProfile(r.Context(), IdentityFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "get_profile", err)
		return
	}
	JSONResponse(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := decode(r, &patch); err != nil {
		h.fail(w, r, "update_profile", err)
		return
	}
	profile, err := h.Profiles.UpdateProfile(r.Context(), IdentityFrom(r.Context()), patch)
	if err != nil {
		h.fail(w, r, "update_profile", err)
		return
	}
	JSONResponse(w, http.StatusOK, profile)
}

func (h *Handler) assignManager(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.AssignManager(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "assign_manager", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "User assigned to Manager group",
		"profile": profile,
	})
}

func (h *Handler) grantDeliveryCrew(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.GrantDeliveryCrew(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "grant_delivery_crew", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "User assigned to Delivery crew group",
		"profile": profile,
	})
}

func (h *Handler) revokeRole(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Profiles.RevokeRole(r.Context(), IdentityFrom(r.Context()), pathID(r, "id"))
	if err != nil {
		h.fail(w, r, "revoke_role", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "User removed from staff groups",
		"profile": profile,
	})
}
