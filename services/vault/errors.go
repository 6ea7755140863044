package vault

import "errors"

// ErrUnknownRequirement signals that no definition exists for the given code.
var ErrUnknownRequirement = errors.New("unknown document requirement")

// ErrRequirementInactive signals an upload against a deactivated dynamic requirement.
var ErrRequirementInactive = errors.New("document requirement is not active for this client")

// ErrNotUploaded signals a download request for a document with no stored file.
var ErrNotUploaded = errors.New("document has not been uploaded")

// ErrDuplicateRequirement signals a catalog insert with an existing code.
var ErrDuplicateRequirement = errors.New("a requirement with this code already exists")
