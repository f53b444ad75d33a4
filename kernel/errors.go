package kernel

import "kcore-go/kerr"

var errCriticalOverflow = kerr.New(kerr.KindResource, "critical_enter", "critical_counter already at CRITICAL_MAX")
