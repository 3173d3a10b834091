package message

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"luxpos/message/command"
	"luxpos/message/event"
)

func NewWatermillRouter(
	commandProcessorConfig cqrs.CommandProcessorConfig,
	eventProcessorConfig cqrs.EventProcessorConfig,
	commandHandler command.Handler,
	eventHandler event.Handler,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, commandProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = commandProcessor.AddHandlers(
		cqrs.NewCommandHandler(
			"CreateTicket",
			commandHandler.CreateTicket,
		),
		cqrs.NewCommandHandler(
			"AddLineItem",
			commandHandler.AddLineItem,
		),
		cqrs.NewCommandHandler(
			"Checkout",
			commandHandler.Checkout,
		),
	)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"JournalTicketCreated",
			eventHandler.JournalTicketCreated,
		),
		cqrs.NewEventHandler(
			"JournalTicketCheckedOut",
			eventHandler.JournalTicketCheckedOut,
		),
	)
	if err != nil {
		panic(err)
	}

	return router
}
