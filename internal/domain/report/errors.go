package report

import "errors"

var ErrReportAccessDenied = errors.New("reports require manager access")
