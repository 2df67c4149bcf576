// Package metrics exposes Prometheus collectors for authentication outcomes
// and HTTP latency.
//
//	m, err := metrics.New("bookshelf")
//	if err != nil {
//		return err
//	}
//	svc := auth.NewService(store, tokens, auth.WithServiceRecorder(m))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
package metrics
