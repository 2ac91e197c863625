package api

import (
	"context"
	"fmt"
)

// Master data endpoints — справочники для выпадающих списков в формах.
// Backend отдает их без пагинации.

// DispatchMethods возвращает доступные способы отгрузки.
func (c *Client) DispatchMethods(ctx context.Context) ([]DispatchMethod, error) {
	var resp ItemResponse[[]DispatchMethod]
	if err := c.Get(ctx, "master_dispatch", "/master/dispatch_methods", nil, &resp); err != nil {
		return nil, fmt.Errorf("dispatch methods: %w", err)
	}
	return resp.Data, nil
}

// DealerStatuses возвращает допустимые статусы дилерского аккаунта.
func (c *Client) DealerStatuses(ctx context.Context) ([]DealerStatusOption, error) {
	var resp ItemResponse[[]DealerStatusOption]
	if err := c.Get(ctx, "master_dealer_statuses", "/master/dealer_statuses", nil, &resp); err != nil {
		return nil, fmt.Errorf("dealer statuses: %w", err)
	}
	return resp.Data, nil
}
