package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/observability"

	"github.com/labstack/echo/v4"
)

const instrumentationName = "fulfillment"

// CompositionRoot builds every handler over one storage driver and one
// notification pipeline.
type CompositionRoot struct {
	cfg         Config
	logger      *slog.Logger
	instruments *observability.Instruments
	storage     Storage
	sender      notify.Sender
	dispatcher  *notify.AsyncDispatcher
}

// NewCompositionRoot wires the notification pipeline over storage. Orders
// changes go to Kafka when KAFKA_HOST is set and to the log otherwise.
func NewCompositionRoot(cfg Config, instruments *observability.Instruments, storage Storage) *CompositionRoot {
	logger := instruments.Logger

	var sender notify.Sender
	if cfg.KafkaHost != "" {
		sender = kafka.NewSender(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
	} else {
		sender = notify.NewLogSender(logger)
	}

	dispatcher := notify.NewAsyncDispatcher(sender, logger,
		notify.WithWorkers(cfg.NotificationWorkers),
		notify.WithQueueSize(cfg.NotificationQueueSize),
		notify.WithMeter(instruments.Meter(instrumentationName)),
	)

	return &CompositionRoot{
		cfg:         cfg,
		logger:      logger,
		instruments: instruments,
		storage:     storage,
		sender:      sender,
		dispatcher:  dispatcher,
	}
}

// Storage returns the storage driver the root was built with.
func (c *CompositionRoot) Storage() Storage {
	return c.storage
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) uowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.storage.UoWFactory.Create()
	})
}

// CreateCreateOrderCommandHandler wires order placement to the stock-aware unit of work.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.inventoryUoWFactory(), c.dispatcher)
}

// CreateSetOrderStatusCommandHandler honours ALLOW_DIRECT_DELIVERY.
func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.inventoryUoWFactory(), c.dispatcher, c.cfg.AllowDirectDelivery)
}

// CreateDeleteOrderCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

// CreateAssignOrderCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uowFactory(), c.dispatcher)
}

// CreateConfirmDeliveryCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

// CreateAcceptOrderCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

// CreateAdvanceDeliveryStatusCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateAdvanceDeliveryStatusCommandHandler() commands.AdvanceDeliveryStatusCommandHandler {
	return commands.NewAdvanceDeliveryStatusCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

// CreateRequestCompletionCommandHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateRequestCompletionCommandHandler() commands.RequestCompletionCommandHandler {
	return commands.NewRequestCompletionCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

// CreateAddDeliveryNoteCommandHandler honours MAX_DELIVERY_NOTES.
func (c *CompositionRoot) CreateAddDeliveryNoteCommandHandler() commands.AddDeliveryNoteCommandHandler {
	return commands.NewAddDeliveryNoteCommandHandler(c.orderUoWFactory(), c.dispatcher, c.cfg.MaxDeliveryNotes)
}

// CreateRemindOverdueCompletionsCommandHandler reads outside any transaction.
func (c *CompositionRoot) CreateRemindOverdueCompletionsCommandHandler() commands.RemindOverdueCompletionsCommandHandler {
	return commands.NewRemindOverdueCompletionsCommandHandler(c.storage.Orders, c.storage.Users, c.dispatcher)
}

// CreateGetOrderQueryHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.storage.Orders)
}

// CreateListOrdersQueryHandler wires the handler to the shared storage and notifier.
func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.storage.Orders)
}

// NewEcho builds the HTTP API.
func (c *CompositionRoot) NewEcho(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		SetOrderStatus:        c.CreateSetOrderStatusCommandHandler(),
		DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
		AssignOrder:           c.CreateAssignOrderCommandHandler(),
		ConfirmDelivery:       c.CreateConfirmDeliveryCommandHandler(),
		AcceptOrder:           c.CreateAcceptOrderCommandHandler(),
		AdvanceDeliveryStatus: c.CreateAdvanceDeliveryStatusCommandHandler(),
		RequestCompletion:     c.CreateRequestCompletionCommandHandler(),
		AddDeliveryNote:       c.CreateAddDeliveryNoteCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
	})
	return httpin.NewEcho(ctx, server, httpin.Options{
		Users:  c.storage.Users,
		Logger: c.logger,
		Tracer: c.instruments.Tracer(instrumentationName),
		Meter:  c.instruments.Meter(instrumentationName),
	})
}

// NewJobManager returns the background jobs.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	handler := c.CreateRemindOverdueCompletionsCommandHandler()
	return jobs.NewJobManager(
		jobs.NewCompletionReminderJob(&handler, c.cfg.CompletionReminderSchedule, c.cfg.CompletionReminderAfter, c.logger),
	)
}

// Close drains pending notifications and releases the transport and storage.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var err error
	if dErr := c.dispatcher.Close(ctx); dErr != nil && !errors.Is(dErr, notify.ErrDispatcherClosed) {
		err = errors.Join(err, fmt.Errorf("close dispatcher: %w", dErr))
	}
	if closer, ok := c.sender.(io.Closer); ok {
		if cErr := closer.Close(); cErr != nil {
			err = errors.Join(err, fmt.Errorf("close sender: %w", cErr))
		}
	}
	if c.storage.Close != nil {
		if sErr := c.storage.Close(); sErr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", sErr))
		}
	}
	return err
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncInventoryUoWFactory adapts a function to commands.InventoryUoWFactory.
type FuncInventoryUoWFactory func() commands.InventoryUoW

// Create calls f.
func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
