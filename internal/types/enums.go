package types

// ActionType names the execution platform that owns an action.
type ActionType string

const (
	ActionTypeUnknown ActionType = "unknown"
	ActionTypeVRO     ActionType = "vro"
	ActionTypeABX     ActionType = "abx"
)

// ParseActionType maps a user supplied platform name to an ActionType.
// Anything that is not a known platform yields ActionTypeUnknown.
func ParseActionType(value string) ActionType {
	switch ActionType(value) {
	case ActionTypeVRO:
		return ActionTypeVRO
	case ActionTypeABX:
		return ActionTypeABX
	default:
		return ActionTypeUnknown
	}
}

// ActionRuntime is a platform-qualified runtime identifier. Values that are
// not listed below are carried through unchanged from the manifest.
type ActionRuntime string

const (
	ActionRuntimeUnknown       ActionRuntime = "unknown"
	ActionRuntimeVRONode12     ActionRuntime = "node:12"
	ActionRuntimeVROPowerCLI11 ActionRuntime = "powercli:11-powershell-6.2"
	ActionRuntimeVROPython37   ActionRuntime = "python:3.7"
	ActionRuntimeABXNode       ActionRuntime = "nodejs"
	ActionRuntimeABXPowershell ActionRuntime = "powershell"
	ActionRuntimeABXPython     ActionRuntime = "python"
)

// RuntimeFamily is the script language grouping of a runtime, independent of
// the platform hosting it.
type RuntimeFamily string

const (
	RuntimeFamilyUnknown RuntimeFamily = "unknown"
	RuntimeFamilyNode    RuntimeFamily = "node"
	RuntimeFamilyPython  RuntimeFamily = "python"
	RuntimeFamilyShell   RuntimeFamily = "shell"
)

// Family returns the script family of the runtime.
func (r ActionRuntime) Family() RuntimeFamily {
	switch r {
	case ActionRuntimeVRONode12, ActionRuntimeABXNode:
		return RuntimeFamilyNode
	case ActionRuntimeVROPython37, ActionRuntimeABXPython:
		return RuntimeFamilyPython
	case ActionRuntimeVROPowerCLI11, ActionRuntimeABXPowershell:
		return RuntimeFamilyShell
	default:
		return RuntimeFamilyUnknown
	}
}

// Platform returns the action type that hosts the runtime.
func (r ActionRuntime) Platform() ActionType {
	switch r {
	case ActionRuntimeVRONode12, ActionRuntimeVROPython37, ActionRuntimeVROPowerCLI11:
		return ActionTypeVRO
	case ActionRuntimeABXNode, ActionRuntimeABXPython, ActionRuntimeABXPowershell:
		return ActionTypeABX
	default:
		return ActionTypeUnknown
	}
}

// Event is a lifecycle phase marker published while packaging.
type Event string

const (
	EventCompileStart      Event = "compileStart"
	EventCompileEnd        Event = "compileEnd"
	EventCompileError      Event = "compileError"
	EventDependenciesStart Event = "dependenciesStart"
	EventDependenciesEnd   Event = "dependenciesEnd"
	EventDependenciesError Event = "dependenciesError"
	EventBundleStart       Event = "bundleStart"
	EventBundleEnd         Event = "bundleEnd"
	EventBundleError       Event = "bundleError"
)

// Phase groups the start, end and error events of one pipeline step.
type Phase struct {
	Name  string
	Start Event
	End   Event
	Error Event
}

var (
	PhaseCompile = Phase{
		Name:  "compile",
		Start: EventCompileStart,
		End:   EventCompileEnd,
		Error: EventCompileError,
	}
	PhaseDependencies = Phase{
		Name:  "dependencies",
		Start: EventDependenciesStart,
		End:   EventDependenciesEnd,
		Error: EventDependenciesError,
	}
	PhaseBundle = Phase{
		Name:  "bundle",
		Start: EventBundleStart,
		End:   EventBundleEnd,
		Error: EventBundleError,
	}
)
