/*
Package events provides an in-memory, non-blocking pub/sub bus for core
lifecycle notifications: file discovery/processing outcomes, sync cycle
start/completion, new integrations, and acknowledgment requirements.

Publish places the event on the broker's 100-event queue and waits only
while that queue is full (or until Stop). The broker loop then hands the
event to each subscriber without waiting: a full subscriber buffer simply
skips that subscriber for that event, trading guaranteed delivery for a
loop that is never held up by a slow subscriber.

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)
	go func() {
		for event := range sub {
			...
		}
	}()

AckEmitter is the one subscriber this core ships built in: on
EventFileProcessed for an integration with GenerateAcknowledgments set,
it writes an Ack_<iso8601>.xml document into the integration's inbox.
*/
package events
