package delivery

import (
	"container/heap"
	"time"
)

// scheduledDelivery is a pending delivery held by the local executor.
// It lives in memory only: Restore re-arms it from the schedule after a restart.
type scheduledDelivery struct {
	ID        string
	Recipient string
	Body      string
	TriggerAt time.Time
}

// deliveryHeap is a min-heap ordered by TriggerAt, earliest first.
type deliveryHeap []scheduledDelivery

func (h deliveryHeap) Len() int           { return len(h) }
func (h deliveryHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h deliveryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *deliveryHeap) Push(x any) {
	*h = append(*h, x.(scheduledDelivery))
}

func (h *deliveryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// upsert replaces any delivery with the same id, so re-arming never duplicates.
func (h *deliveryHeap) upsert(d scheduledDelivery) {
	h.remove(d.ID)
	heap.Push(h, d)
}

func (h *deliveryHeap) pop() scheduledDelivery {
	return heap.Pop(h).(scheduledDelivery)
}

func (h *deliveryHeap) remove(id string) bool {
	for i, d := range *h {
		if d.ID == id {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}
