package worker

import "time"

// SettleTimeout bounds how long settling a processed job may take after the
// worker's context is already gone
const SettleTimeout = 5 * time.Second

// Log messages
const (
	LogMsgWorkerTaskFailed      = "Worker task failed"
	LogMsgMailWorkerStarted     = "Mail worker started"
	LogMsgMailWorkerStopped     = "Mail worker stopped"
	LogMsgMailWorkerStopTimeout = "Mail worker stop timed out"
	LogMsgDequeueFailed         = "Failed to dequeue mail job"
	LogMsgSettleFailed          = "Failed to settle mail job"
	LogMsgDeliveryRetry         = "Mail delivery failed, requeued"
	LogMsgDeliveryDeadLettered  = "Mail delivery dead lettered"
)
