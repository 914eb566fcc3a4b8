package core

import (
	"strings"

	"polyglotpkg/internal/types"
)

// ResolveActionType classifies the manifest. An override selects a platform
// only when the manifest carries the matching block. Without an override
// the vro block is checked before the abx block.
func ResolveActionType(manifest *types.Manifest, override types.ActionType) types.ActionType {
	if manifest == nil {
		return types.ActionTypeUnknown
	}
	switch override {
	case types.ActionTypeVRO:
		if manifest.Vro != nil {
			return types.ActionTypeVRO
		}
		return types.ActionTypeUnknown
	case types.ActionTypeABX:
		if manifest.Abx != nil {
			return types.ActionTypeABX
		}
		return types.ActionTypeUnknown
	}
	// A manifest declaring both blocks resolves to vro.
	if manifest.Vro != nil {
		return types.ActionTypeVRO
	}
	if manifest.Abx != nil {
		return types.ActionTypeABX
	}
	return types.ActionTypeUnknown
}

// ResolveActionRuntime maps the manifest runtime name to a platform runtime.
// The override platform decides the qualification when it is set, the
// presence of the vro block otherwise. Unrecognized names pass through.
func ResolveActionRuntime(manifest *types.Manifest, override types.ActionType) types.ActionRuntime {
	if manifest == nil {
		return types.ActionRuntimeUnknown
	}
	raw := strings.TrimSpace(manifest.Platform.Runtime)
	if raw == "" {
		return types.ActionRuntimeUnknown
	}
	vro := manifest.Vro != nil
	if override == types.ActionTypeVRO || override == types.ActionTypeABX {
		vro = override == types.ActionTypeVRO
	}
	switch raw {
	case "nodejs":
		if vro {
			return types.ActionRuntimeVRONode12
		}
		return types.ActionRuntimeABXNode
	case "powershell":
		if vro {
			return types.ActionRuntimeVROPowerCLI11
		}
		return types.ActionRuntimeABXPowershell
	case "python":
		if vro {
			return types.ActionRuntimeVROPython37
		}
		return types.ActionRuntimeABXPython
	default:
		return types.ActionRuntime(raw)
	}
}
