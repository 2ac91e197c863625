package api

import (
	"context"
	"fmt"
)

// Дилерские операции вне обычного CRUD: смена статуса, сброс пароля,
// разблокировка аккаунта. У каждой свой endpoint на backend.

// UpdateDealer обновляет карточку дилера от имени администратора.
func (c *Client) UpdateDealer(ctx context.Context, id string, input DealerInput) (*Dealer, error) {
	var resp ItemResponse[Dealer]
	path := fmt.Sprintf("/user/dealer-update-admin/%s", id)
	if err := c.Put(ctx, "dealer_update", path, input, &resp); err != nil {
		return nil, fmt.Errorf("update dealer %s: %w", id, err)
	}
	return &resp.Data, nil
}

// SetDealerStatus переключает статус аккаунта дилера.
//
// Допустимые значения статуса отдает /master/dealer_statuses. Статус
// Suspended выставляется только backend процессами и из консоли недоступен.
func (c *Client) SetDealerStatus(ctx context.Context, id string, status string) error {
	path := fmt.Sprintf("/user/dealer-status/%s", id)
	body := map[string]string{"status": status}
	if err := c.Patch(ctx, "dealer_status", path, body, nil); err != nil {
		return fmt.Errorf("set dealer status %s: %w", id, err)
	}
	return nil
}

// ResetDealerPassword инициирует сброс пароля дилера (письмо со ссылкой).
func (c *Client) ResetDealerPassword(ctx context.Context, id string) error {
	path := fmt.Sprintf("/user/dealer-reset-password/%s", id)
	if err := c.Post(ctx, "dealer_reset_password", path, nil, nil); err != nil {
		return fmt.Errorf("reset dealer password %s: %w", id, err)
	}
	return nil
}

// UnlockDealer снимает блокировку после неудачных попыток входа.
func (c *Client) UnlockDealer(ctx context.Context, id string) error {
	path := fmt.Sprintf("/user/dealer-unlock/%s", id)
	if err := c.Patch(ctx, "dealer_unlock", path, nil, nil); err != nil {
		return fmt.Errorf("unlock dealer %s: %w", id, err)
	}
	return nil
}
