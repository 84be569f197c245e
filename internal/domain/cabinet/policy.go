package cabinet

// Resources and actions guarded by the role policy.
const (
	ResourceConversation = "conversation"
	ResourceNotification = "notification"

	ActionDelete = "delete"
	ActionPurge  = "purge"
)

// PolicyEnforcer decides whether a cabinet role may perform action on resource.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}
