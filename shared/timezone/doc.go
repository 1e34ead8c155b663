// Package timezone keeps the studio's local timezone.
//
// Call Init once at startup with an IANA name such as "Asia/Kolkata" or "UTC":
//
//	timezone.Init(cfg.App.Timezone)
//	now := timezone.Now()
//	stamp := timezone.Format(booking.CreatedAt, time.RFC3339)
//
// Until Init runs, every helper works in UTC.
package timezone
