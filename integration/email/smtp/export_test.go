package smtp

import "time"

// SetClock replaces the clock used for the Date header.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}
