package queue

import (
	"context"
	"log"
	"time"
)

// Refresher re-derives and pushes queue snapshots for every barber with
// connected viewers, so displays stay current even when no barber action
// lands. Mirrors the 30-second auto-refresh the mobile displays expect.
type Refresher struct {
	svc      *Service
	hub      *Hub
	interval time.Duration
	stopChan chan struct{}
}

func NewRefresher(svc *Service, hub *Hub, interval time.Duration) *Refresher {
	return &Refresher{
		svc:      svc,
		hub:      hub,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (r *Refresher) Start() {
	go r.run()
	log.Println("Queue refresher started, interval:", r.interval)
}

func (r *Refresher) Stop() {
	close(r.stopChan)
	log.Println("Queue refresher stopped")
}

func (r *Refresher) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refreshAll()
		case <-r.stopChan:
			return
		}
	}
}

func (r *Refresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, barberID := range r.hub.ActiveBarbers() {
		snap, err := r.svc.Snapshot(ctx, barberID)
		if err != nil {
			log.Printf("queue_refresh_error barber_id=%d error=%q", barberID, err)
			continue
		}
		r.hub.Publish(barberID, snap)
	}
}
