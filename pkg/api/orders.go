package api

import (
	"context"
	"fmt"
	"net/url"
)

// Экспорты заказов. Backend генерирует xlsx и отдает его как attachment.

// ExportOrders скачивает xlsx со всеми заказами под текущими фильтрами.
// params — те же query параметры, что и у списка заказов.
func (c *Client) ExportOrders(ctx context.Context, params url.Values) (*Blob, error) {
	blob, err := c.GetBlob(ctx, "orders_export", "/orders/export", params)
	if err != nil {
		return nil, fmt.Errorf("orders export: %w", err)
	}
	return blob, nil
}

// ExportOrder скачивает xlsx одного заказа.
func (c *Client) ExportOrder(ctx context.Context, id string) (*Blob, error) {
	path := fmt.Sprintf("/orders/%s/export", id)
	blob, err := c.GetBlob(ctx, "order_export", path, nil)
	if err != nil {
		return nil, fmt.Errorf("order export %s: %w", id, err)
	}
	return blob, nil
}

// ExportBackorders скачивает xlsx сводки по товарам в бэкордере.
func (c *Client) ExportBackorders(ctx context.Context, params url.Values) (*Blob, error) {
	blob, err := c.GetBlob(ctx, "backorders_export", "/orders/backorders/products/export", params)
	if err != nil {
		return nil, fmt.Errorf("backorders export: %w", err)
	}
	return blob, nil
}
