// Package broadcast provides a minimal generic publish/subscribe primitive
// used to fan session snapshot changes out to interested consumers.
//
// A Broadcaster delivers every message to all current subscribers without
// blocking the publisher: a subscriber whose buffer is full misses the
// message and is dropped. That trade-off fits state-change feeds, where a
// consumer that falls behind should re-read the authoritative snapshot
// instead of replaying stale updates.
//
// # Usage
//
//	b := broadcast.NewMemoryBroadcaster[session.Snapshot](8)
//	sub := b.Subscribe(ctx)
//	go func() {
//	    for msg := range sub.Receive(ctx) {
//	        render(msg.Data)
//	    }
//	}()
//	_ = b.Broadcast(ctx, broadcast.Message[session.Snapshot]{Data: snap})
package broadcast
