package metrics

import "errors"

var ErrRegisterCollector = errors.New("failed to register metrics collector")
