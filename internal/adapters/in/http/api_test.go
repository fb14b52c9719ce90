package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/observability"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type APISuite struct {
	suite.Suite

	root    *cmd.CompositionRoot
	storage cmd.Storage
	e       *echo.Echo

	customer kernel.UUID
	other    kernel.UUID
	admin    kernel.UUID
	agent    kernel.UUID
	agent2   kernel.UUID
	blocked  kernel.UUID
	kettle   kernel.UUID
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	ctx := s.T().Context()

	instruments, _, err := observability.Init(ctx, observability.Config{
		ServiceName: "fulfillment-test",
		Exporter:    observability.ExporterNone,
		LogLevel:    "error",
		LogOutput:   io.Discard,
	})
	s.Require().NoError(err)

	cfg := cmd.Config{
		StorageDriver:              cmd.StorageMemory,
		NotificationWorkers:        1,
		NotificationQueueSize:      64,
		MaxDeliveryNotes:           2,
		CompletionReminderSchedule: "0 0 * * * *",
		CompletionReminderAfter:    1,
	}
	s.storage = cmd.NewMemoryStorage()
	s.root = cmd.NewCompositionRoot(cfg, instruments, s.storage)
	s.e, err = s.root.NewEcho(ctx)
	s.Require().NoError(err)

	s.customer = s.addUser("Ada Lovelace", "ada@example.com", user.RoleCustomer, false)
	s.other = s.addUser("Grace Hopper", "grace@example.com", user.RoleCustomer, false)
	s.admin = s.addUser("Store Admin", "admin@example.com", user.RoleAdmin, false)
	s.agent = s.addUser("Rider One", "rider1@example.com", user.RoleDeliveryAgent, false)
	s.agent2 = s.addUser("Rider Two", "rider2@example.com", user.RoleDeliveryAgent, false)
	s.blocked = s.addUser("Blocked Buyer", "blocked@example.com", user.RoleCustomer, true)

	s.kettle = kernel.NewUUID()
	s.Require().NoError(s.storage.Stock.Set(ctx, s.kettle, 10))
}

func (s *APISuite) TearDownTest() {
	s.Require().NoError(s.root.Close(s.T().Context()))
}

func (s *APISuite) addUser(name, email string, role user.Role, blocked bool) kernel.UUID {
	u, err := user.RestoreUser(kernel.NewUUID(), name, email, role, blocked)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.Users.Add(s.T().Context(), u))
	return u.ID()
}

func (s *APISuite) do(method, path string, actor *kernel.UUID, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(httpin.UserIDHeader, actor.String())
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) createBody(quantity int) map[string]any {
	return map[string]any{
		"shippingInfo": map[string]any{
			"address":   "12 Harbour Road, Dublin",
			"phoneNo":   "+353 1 234 5678",
			"latitude":  53.3498,
			"longitude": -6.2603,
		},
		"orderItems": []map[string]any{{
			"product":  s.kettle.String(),
			"name":     "Tea kettle",
			"price":    10.5,
			"quantity": quantity,
			"image":    "kettle.png",
		}},
		"paymentInfo":   map[string]any{"id": "pi_123", "status": "succeeded"},
		"taxPrice":      1,
		"shippingPrice": 5,
	}
}

func (s *APISuite) createOrder() httpin.Order {
	rec := s.do(http.MethodPost, "/order", &s.customer, s.createBody(2))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.OrderResponse](s.T(), rec).Order
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *APISuite) requireError(rec *httptest.ResponseRecorder, status int, code string) {
	s.Require().Equal(status, rec.Code, rec.Body.String())
	body := decode[httpin.ErrorResponse](s.T(), rec)
	s.False(body.Success)
	s.Equal(code, body.Code)
	s.NotEmpty(body.Message)
}

func orderPath(prefix string, o httpin.Order, suffix string) string {
	return fmt.Sprintf("%s/%s%s", prefix, o.ID.String(), suffix)
}

func (s *APISuite) TestHealthNeedsNoIdentity() {
	rec := s.do(http.MethodGet, "/health", nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *APISuite) TestUnknownPathIsNotFound() {
	s.requireError(s.do(http.MethodGet, "/no/such/route", nil, nil), http.StatusNotFound, httpin.CodeNotFound)
	s.requireError(s.do(http.MethodGet, "/admin/no-such-route", nil, nil), http.StatusNotFound, httpin.CodeNotFound)
}

func (s *APISuite) TestMissingIdentity() {
	s.requireError(s.do(http.MethodGet, "/orders/mine", nil, nil), http.StatusUnauthorized, httpin.CodeUnauthorized)
}

func (s *APISuite) TestUnknownIdentity() {
	stranger := kernel.NewUUID()
	s.requireError(s.do(http.MethodGet, "/orders/mine", &stranger, nil), http.StatusUnauthorized, httpin.CodeUnauthorized)
}

func (s *APISuite) TestCreateOrder() {
	created := s.createOrder()

	s.Equal(s.customer.String(), created.User.String())
	s.Equal("Processing", created.OrderStatus)
	s.Equal("21.00", created.ItemPrice)
	s.Equal("1.00", created.TaxPrice)
	s.Equal("5.00", created.ShippingPrice)
	s.Equal("27.00", created.TotalPrice)
	s.Nil(created.AssignedTo)
	s.Len(created.OrderItems, 1)
	s.Equal("+353 1 234 5678", created.ShippingInfo.PhoneNo)

	left, err := s.storage.Stock.Available(s.T().Context(), s.kettle)
	s.Require().NoError(err)
	s.Equal(8, left)
}

func (s *APISuite) TestCreateOrderRejectsTooManyUnits() {
	rec := s.do(http.MethodPost, "/order", &s.customer, s.createBody(7))

	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)
}

func (s *APISuite) TestCreateOrderShortStock() {
	s.Require().NoError(s.storage.Stock.Set(s.T().Context(), s.kettle, 1))

	rec := s.do(http.MethodPost, "/order", &s.customer, s.createBody(2))

	s.requireError(rec, http.StatusBadRequest, httpin.CodeDependency)
	left, err := s.storage.Stock.Available(s.T().Context(), s.kettle)
	s.Require().NoError(err)
	s.Equal(1, left)
}

func (s *APISuite) TestCreateOrderRequiresCustomer() {
	rec := s.do(http.MethodPost, "/order", &s.admin, s.createBody(1))

	s.requireError(rec, http.StatusForbidden, httpin.CodeForbidden)
}

func (s *APISuite) TestBlockedUserIsForbidden() {
	rec := s.do(http.MethodGet, "/orders/mine", &s.blocked, nil)

	s.requireError(rec, http.StatusForbidden, httpin.CodeForbidden)
}

func (s *APISuite) TestGetOrderVisibility() {
	created := s.createOrder()
	path := orderPath("/order", created, "")

	s.Equal(http.StatusOK, s.do(http.MethodGet, path, &s.customer, nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, path, &s.admin, nil).Code)
	s.requireError(s.do(http.MethodGet, path, &s.other, nil), http.StatusForbidden, httpin.CodeForbidden)
	s.requireError(s.do(http.MethodGet, path, &s.agent, nil), http.StatusForbidden, httpin.CodeForbidden)

	missing := fmt.Sprintf("/order/%s", kernel.NewUUID())
	s.requireError(s.do(http.MethodGet, missing, &s.admin, nil), http.StatusNotFound, httpin.CodeNotFound)
}

func (s *APISuite) TestMalformedOrderID() {
	rec := s.do(http.MethodGet, "/order/not-a-uuid", &s.admin, nil)

	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)
}

func (s *APISuite) TestListings() {
	first := s.createOrder()
	second := s.createOrder()

	mine := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/orders/mine", &s.customer, nil))
	s.True(mine.Success)
	s.Len(mine.Orders, 2)
	s.Nil(mine.TotalAmount)

	all := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/admin/orders", &s.admin, nil))
	s.Len(all.Orders, 2)
	s.Require().NotNil(all.TotalAmount)
	s.Equal("54.00", *all.TotalAmount)

	s.Equal(http.StatusOK, s.do(http.MethodPut, orderPath("/delivery/order", first, "/accept"), &s.agent, nil).Code)

	available := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/delivery/orders/available", &s.agent2, nil))
	s.Require().Len(available.Orders, 1)
	s.Equal(second.ID, available.Orders[0].ID)

	assigned := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/delivery/orders/mine", &s.agent, nil))
	s.Require().Len(assigned.Orders, 1)
	s.Equal(first.ID, assigned.Orders[0].ID)

	everything := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/delivery/orders/all", &s.agent2, nil))
	s.Len(everything.Orders, 2)

	s.requireError(s.do(http.MethodGet, "/admin/orders", &s.agent, nil), http.StatusForbidden, httpin.CodeForbidden)
}

func (s *APISuite) TestDeliveryLifecycle() {
	created := s.createOrder()

	rec := s.do(http.MethodPut, orderPath("/delivery/order", created, "/accept"), &s.agent, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	accepted := decode[httpin.OrderResponse](s.T(), rec).Order
	s.Require().NotNil(accepted.AssignedTo)
	s.Equal(s.agent.String(), *accepted.AssignedTo)
	s.NotNil(accepted.AssignedAt)

	rec = s.do(http.MethodPut, orderPath("/delivery/order", created, "/status"), &s.agent, map[string]string{"status": "Shipped"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("Shipped", decode[httpin.OrderResponse](s.T(), rec).Order.OrderStatus)

	rec = s.do(http.MethodPut, orderPath("/delivery/order", created, "/status"), &s.agent, map[string]string{"status": "Delivered"})
	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)

	rec = s.do(http.MethodPut, orderPath("/delivery/order", created, "/status"), &s.agent2, map[string]string{"status": "Out for Delivery"})
	s.requireError(rec, http.StatusForbidden, httpin.CodeForbidden)

	rec = s.do(http.MethodPost, orderPath("/delivery/order", created, "/note"), &s.agent, map[string]string{"note": "Left with the concierge"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	notes := decode[httpin.OrderResponse](s.T(), rec).Order.DeliveryNotes
	s.Require().Len(notes, 1)
	s.Equal("Left with the concierge", notes[0].Note)
	s.Equal(s.agent.String(), notes[0].AddedBy)

	rec = s.do(http.MethodPut, orderPath("/admin/order", created, "/confirm-delivery"), &s.admin, nil)
	s.requireError(rec, http.StatusBadRequest, httpin.CodeStateConflict)

	rec = s.do(http.MethodPut, orderPath("/delivery/order", created, "/request-completion"), &s.agent, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.True(decode[httpin.OrderResponse](s.T(), rec).Order.CompletionRequested)

	rec = s.do(http.MethodPut, orderPath("/delivery/order", created, "/request-completion"), &s.agent, nil)
	s.requireError(rec, http.StatusBadRequest, httpin.CodeStateConflict)

	pending := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/admin/orders/pending-completion", &s.admin, nil))
	s.Require().Len(pending.Orders, 1)
	s.Equal(created.ID, pending.Orders[0].ID)

	rec = s.do(http.MethodDelete, orderPath("/admin/order", created, ""), &s.admin, nil)
	s.requireError(rec, http.StatusBadRequest, httpin.CodeStateConflict)

	rec = s.do(http.MethodPut, orderPath("/admin/order", created, "/confirm-delivery"), &s.admin, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	delivered := decode[httpin.OrderResponse](s.T(), rec).Order
	s.Equal("Delivered", delivered.OrderStatus)
	s.False(delivered.CompletionRequested)
	s.NotNil(delivered.DeliveredAt)

	rec = s.do(http.MethodDelete, orderPath("/admin/order", created, ""), &s.admin, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	msg := decode[httpin.MessageResponse](s.T(), rec)
	s.True(msg.Success)
	s.Equal("Order deleted successfully", msg.Message)

	s.requireError(s.do(http.MethodGet, orderPath("/order", created, ""), &s.admin, nil), http.StatusNotFound, httpin.CodeNotFound)
}

func (s *APISuite) TestNoteLimit() {
	created := s.createOrder()
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, orderPath("/delivery/order", created, "/accept"), &s.agent, nil).Code)

	path := orderPath("/delivery/order", created, "/note")
	for i := range 2 {
		rec := s.do(http.MethodPost, path, &s.agent, map[string]string{"note": fmt.Sprintf("attempt %d", i+1)})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	s.requireError(s.do(http.MethodPost, path, &s.agent, map[string]string{"note": "third"}), http.StatusBadRequest, httpin.CodeStateConflict)
	s.requireError(s.do(http.MethodPost, path, &s.agent, map[string]string{"note": ""}), http.StatusBadRequest, httpin.CodeValidation)
}

func (s *APISuite) TestAdminAssignAndCancel() {
	created := s.createOrder()
	assign := orderPath("/admin/order", created, "/assign")

	rec := s.do(http.MethodPut, assign, &s.admin, map[string]string{"agentId": s.customer.String()})
	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)

	rec = s.do(http.MethodPut, assign, &s.admin, map[string]string{"agentId": s.agent2.String()})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(s.agent2.String(), *decode[httpin.OrderResponse](s.T(), rec).Order.AssignedTo)

	s.requireError(s.do(http.MethodPut, orderPath("/delivery/order", created, "/accept"), &s.agent, nil),
		http.StatusBadRequest, httpin.CodeStateConflict)

	rec = s.do(http.MethodPut, orderPath("/admin/order", created, ""), &s.admin, map[string]string{"status": "Cancelled"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("Cancelled", decode[httpin.OrderResponse](s.T(), rec).Order.OrderStatus)

	left, err := s.storage.Stock.Available(s.T().Context(), s.kettle)
	s.Require().NoError(err)
	s.Equal(10, left)
}

func (s *APISuite) TestCancelDropsPendingCompletion() {
	created := s.createOrder()
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, orderPath("/delivery/order", created, "/accept"), &s.agent, nil).Code)
	rec := s.do(http.MethodPut, orderPath("/delivery/order", created, "/request-completion"), &s.agent, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, orderPath("/admin/order", created, ""), &s.admin, map[string]string{"status": "Cancelled"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[httpin.OrderResponse](s.T(), rec).Order
	s.Equal("Cancelled", cancelled.OrderStatus)
	s.False(cancelled.CompletionRequested)

	pending := decode[httpin.OrdersResponse](s.T(), s.do(http.MethodGet, "/admin/orders/pending-completion", &s.admin, nil))
	s.Empty(pending.Orders)

	stored := decode[httpin.OrderResponse](s.T(), s.do(http.MethodGet, orderPath("/order", created, ""), &s.admin, nil)).Order
	s.False(stored.CompletionRequested)
}

func (s *APISuite) TestAdminStatusRejectsUnknownStatus() {
	created := s.createOrder()

	rec := s.do(http.MethodPut, orderPath("/admin/order", created, ""), &s.admin, map[string]string{"status": "Lost"})

	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)
}

func (s *APISuite) TestDirectDeliveryDisabled() {
	created := s.createOrder()

	rec := s.do(http.MethodPut, orderPath("/admin/order", created, ""), &s.admin, map[string]string{"status": "Delivered"})

	s.requireError(rec, http.StatusBadRequest, httpin.CodeValidation)
}

func (s *APISuite) TestConcurrentAcceptHasOneWinner() {
	created := s.createOrder()
	path := orderPath("/delivery/order", created, "/accept")

	const agents = 8
	ids := make([]kernel.UUID, agents)
	for i := range ids {
		ids[i] = s.addUser(fmt.Sprintf("Rider %d", i+10), fmt.Sprintf("rider%d@example.com", i+10), user.RoleDeliveryAgent, false)
	}

	codes := make([]int, agents)
	bodies := make([]*httptest.ResponseRecorder, agents)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			rec := s.do(http.MethodPut, path, &ids[i], nil)
			codes[i] = rec.Code
			bodies[i] = rec
		}()
	}
	close(start)
	wg.Wait()

	winners := 0
	for i, code := range codes {
		switch code {
		case http.StatusOK:
			winners++
		case http.StatusBadRequest:
			assert.Equal(s.T(), httpin.CodeStateConflict, decode[httpin.ErrorResponse](s.T(), bodies[i]).Code)
		default:
			s.Failf("unexpected status", "agent %d got %d: %s", i, code, bodies[i].Body.String())
		}
	}
	s.Equal(1, winners)
}
