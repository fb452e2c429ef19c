// Package form implements a configuration-driven form: an ordered field
// registry and a controller that owns values, per-field errors and the
// submission lifecycle.
//
// # Registry
//
// The registry is data, not code per field. ContactFields returns the
// contact form (name, email, phone, message); LoadRegistry reads the same
// structure from YAML.
//
// # Controller
//
//	ctrl, err := form.New(form.ContactFields(), translator,
//		form.WithSubmitter(store),
//		form.WithNotifier(toasts),
//		form.WithReporter(form.LogReporter(log)),
//	)
//
//	ctrl.SetValue("name", "Jane")   // clears the name error
//	ctrl.HandleBlur("name", "Jane") // validates and records the result
//
//	if err := ctrl.Submit(ctx); err != nil {
//		var verrs validator.ValidationErrors
//		if errors.As(err, &verrs) {
//			// render ctrl.Snapshot()
//		}
//	}
//
// The lifecycle is Idle → Submitting → Submitted → Idle. A successful
// submission schedules an automatic Reset after the reset delay; a manual
// Reset or Close makes the pending reset a no-op.
package form
