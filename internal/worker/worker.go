package worker

import (
	"context"
	"log"
	"time"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services"
)

// Worker processes queue items
type Worker struct {
	queueRepo    *database.QueueRepository
	broadcaster  *services.ProgressBroadcaster
	processor    *Processor
	pollInterval time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewWorker creates a new queue worker
func NewWorker(
	queueRepo *database.QueueRepository,
	broadcaster *services.ProgressBroadcaster,
	processor *Processor,
	pollInterval time.Duration,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		queueRepo:    queueRepo,
		broadcaster:  broadcaster,
		processor:    processor,
		pollInterval: pollInterval,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins processing queue items
func (w *Worker) Start() {
	log.Println("Queue worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start
	w.processNext()

	// Then process on interval
	for {
		select {
		case <-w.ctx.Done():
			log.Println("Queue worker stopped")
			return
		case <-ticker.C:
			w.processNext()
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	log.Println("Stopping queue worker...")
	w.cancel()
}

// processNext processes the next pending queue item
func (w *Worker) processNext() {
	item, err := w.queueRepo.GetNextPending()
	if err != nil {
		log.Printf("Error getting next pending item: %v", err)
		return
	}

	if item == nil {
		// No items to process
		return
	}

	log.Printf("Processing queue item %d (video %s)", item.ID, item.VideoID)

	// Mark as processing
	now := time.Now()
	item.Status = models.StatusProcessing
	item.StartedAt = &now
	item.Progress = 0
	item.CurrentStep = "Starting"
	if err := w.queueRepo.Update(item); err != nil {
		log.Printf("Error updating queue item: %v", err)
		return
	}

	// Broadcast start
	w.broadcaster.BroadcastFromQueueItem(item, "Processing started")

	// Process the item
	if err := w.processor.Process(item); err != nil {
		log.Printf("Error processing queue item %d: %v", item.ID, err)
		w.failQueueItem(item, err.Error())
		return
	}

	// Mark as completed
	completed := time.Now()
	item.Status = models.StatusCompleted
	item.CompletedAt = &completed
	item.Progress = 100
	item.CurrentStep = "Completed"
	if err := w.queueRepo.Update(item); err != nil {
		log.Printf("Error updating completed queue item: %v", err)
		return
	}

	// Broadcast completion
	w.broadcaster.BroadcastFromQueueItem(item, "Processing completed successfully")
	log.Printf("Queue item %d completed successfully", item.ID)
}

// failQueueItem marks a queue item as failed
func (w *Worker) failQueueItem(item *models.QueueItem, errorMsg string) {
	item.Status = models.StatusFailed
	item.ErrorMessage = errorMsg
	item.RetryCount++
	completed := time.Now()
	item.CompletedAt = &completed

	if err := w.queueRepo.Update(item); err != nil {
		log.Printf("Error updating failed queue item: %v", err)
		return
	}

	w.broadcaster.BroadcastFromQueueItem(item, "Processing failed")
	log.Printf("Queue item %d failed: %s", item.ID, errorMsg)
}
