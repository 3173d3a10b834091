package trace

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TracingPublisherDecorator opens a span per published message and injects
// the trace context into the message metadata so consumers can continue it.
type TracingPublisherDecorator struct {
	message.Publisher
}

func (p TracingPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		ctx, span := otel.Tracer("luxpos").Start(msg.Context(), "publish "+topic)
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(msg.Metadata))
		msg.SetContext(ctx)
		span.End()
	}

	return p.Publisher.Publish(topic, messages...)
}
