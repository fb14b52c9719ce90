// Package http exposes the order use cases over REST with echo.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	SetOrderStatus        commands.SetOrderStatusCommandHandler
	DeleteOrder           commands.DeleteOrderCommandHandler
	AssignOrder           commands.AssignOrderCommandHandler
	ConfirmDelivery       commands.ConfirmDeliveryCommandHandler
	AcceptOrder           commands.AcceptOrderCommandHandler
	AdvanceDeliveryStatus commands.AdvanceDeliveryStatusCommandHandler
	RequestCompletion     commands.RequestCompletionCommandHandler
	AddDeliveryNote       commands.AddDeliveryNoteCommandHandler

	GetOrder   queries.GetOrderQueryHandler
	ListOrders queries.ListOrdersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Options configures NewEcho.
type Options struct {
	Users  ports.UserRepository
	Logger *slog.Logger
	Tracer trace.Tracer
	Meter  metric.Meter
}

// NewEcho builds the echo instance with middleware and every route mounted.
func NewEcho(ctx context.Context, server *Server, opts Options) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerDocs(doc); err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc, nil)
	if err != nil {
		return nil, err
	}
	tracing, err := Trace(opts.Tracer, opts.Meter)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(opts.Logger)

	e.Use(requestLogger(opts.Logger))
	e.Use(tracing)
	e.Use(middleware.Recover())

	server.RegisterRoutes(e, Authenticate(opts.Users, nil), validate)
	return e, nil
}

// RegisterRoutes mounts the API on e. The protected middleware runs only for
// matched API routes, so /health, /swagger and unknown paths never ask for an
// identity.
//
// Example:
//
//	server.RegisterRoutes(e, Authenticate(users, nil), validate)
func (s *Server) RegisterRoutes(e *echo.Echo, protected ...echo.MiddlewareFunc) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := func(add func(string, echo.HandlerFunc, ...echo.MiddlewareFunc) *echo.Route, path string, h echo.HandlerFunc) {
		add(path, h, protected...)
	}

	api(e.POST, "/order", s.CreateOrder)
	api(e.GET, "/order/:id", s.GetOrder)
	api(e.GET, "/orders/mine", s.ListMyOrders)

	admin := e.Group("/admin")
	api(admin.GET, "/orders", s.ListAllOrders)
	api(admin.GET, "/orders/pending-completion", s.ListPendingCompletion)
	api(admin.PUT, "/order/:id", s.SetOrderStatus)
	api(admin.DELETE, "/order/:id", s.DeleteOrder)
	api(admin.PUT, "/order/:id/assign", s.AssignOrder)
	api(admin.PUT, "/order/:id/confirm-delivery", s.ConfirmDelivery)

	delivery := e.Group("/delivery")
	api(delivery.GET, "/orders/available", s.ListAvailableOrders)
	api(delivery.GET, "/orders/mine", s.ListAssignedOrders)
	api(delivery.GET, "/orders/all", s.ListAllOrdersForAgent)
	api(delivery.PUT, "/order/:id/accept", s.AcceptOrder)
	api(delivery.PUT, "/order/:id/status", s.AdvanceDeliveryStatus)
	api(delivery.PUT, "/order/:id/request-completion", s.RequestCompletion)
	api(delivery.POST, "/order/:id/note", s.AddDeliveryNote)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// orderID binds the :id path parameter.
func orderID(ctx echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid format for parameter id: %w", err))
	}
	return kernel.UUIDFromBytes(id[:])
}

// bindBody decodes the JSON body into dst.
func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
