package port

// Metrics records business counters.
type Metrics interface {
	LabelRendered(format string)
	UnknownCourierSeen()
	SaleRecorded(method string)
	EmailDelivered(ok bool)
}
