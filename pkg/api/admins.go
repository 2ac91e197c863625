package api

import (
	"context"
	"fmt"
)

// SetAdminStatus включает или выключает учетную запись администратора.
// Удаления админов у портала нет — только деактивация.
func (c *Client) SetAdminStatus(ctx context.Context, id string, active bool) error {
	path := fmt.Sprintf("/user/admin-status/%s", id)
	body := map[string]bool{"status": active}
	if err := c.Patch(ctx, "admin_status", path, body, nil); err != nil {
		return fmt.Errorf("set admin status %s: %w", id, err)
	}
	return nil
}
