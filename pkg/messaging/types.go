package messaging

// Topic names a durable exchange/queue pair used for analytics events.
type Topic string

const TrackingTopic Topic = "tracking"
