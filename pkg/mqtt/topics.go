package mqtt

import "fmt"

// Topic constants for appearance context messages.
const (
	// TopicAppearanceBase is the root of the appearance context topics
	TopicAppearanceBase = "automation/context/appearance"
)

// AppearanceTopic constructs the appearance context topic for a host.
// Pattern: automation/context/appearance/{host}
func AppearanceTopic(host string) string {
	return fmt.Sprintf("%s/%s", TopicAppearanceBase, host)
}
