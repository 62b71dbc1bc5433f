package kafka

// TopicPrefix namespaces all topics produced by this application.
const TopicPrefix = "marketplace"

// Topic builds a fully qualified topic name from a domain and an action,
// e.g. Topic("order", "placed") -> "marketplace.order.placed".
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}
