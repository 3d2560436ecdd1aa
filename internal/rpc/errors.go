package rpc

import "fap/internal/ferrors"

// wireErrorFor maps a core error onto its wire representation. An
// error with no recognized ferrors.Code gets the generic host
// inspection code; in every case the message is the error's own text.
func wireErrorFor(err error) wireError {
	code := ferrors.GetCode(err)

	wireCode, ok := map[ferrors.Code]int{
		ferrors.CodeElementNotFound:        WireCodeElementNotFound,
		ferrors.CodeElementNotInteractable: WireCodeElementNotInteractable,
		ferrors.CodeCaptureUnavailable:     WireCodeCaptureUnavailable,
		ferrors.CodeHostInspection:         WireCodeHostInspectionError,
		ferrors.CodeDirectAccess:           WireCodeDirectAccessError,
		ferrors.CodeUnknownMethod:          WireCodeUnknownMethod,
		ferrors.CodeInvalidParams:          WireCodeInvalidParams,
		ferrors.CodeSelectorParse:          WireCodeInvalidParams,
		ferrors.CodeSelectorRequired:       WireCodeInvalidParams,
		ferrors.CodeActionNotSupported:     WireCodeElementNotInteractable,
	}[code]
	if !ok {
		wireCode = WireCodeHostInspectionError
	}

	return wireError{Code: wireCode, Message: err.Error()}
}
