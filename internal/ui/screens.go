// Определения экранов консоли.
//
// Каждый экран — тонкий адаптер над generic ресурсом: колонки таблицы,
// построение строк, спецификация формы и доступные операции. Вся логика
// списков (кэш, инвалидация, устаревшие ответы) живет в pkg/query.
package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/export"
	"github.com/ilkoid/partsdesk/pkg/history"
	"github.com/ilkoid/partsdesk/pkg/importjob"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/ilkoid/partsdesk/pkg/status"
	"github.com/ilkoid/partsdesk/pkg/upload"
)

// Row — одна строка таблицы экрана.
//
// Fields хранит значения для префилла формы редактирования, чтобы не
// ходить за деталью повторно там, где список уже содержит все поля.
type Row struct {
	ID     string
	Cells  []string
	Fields map[string]string
}

// Page — страница строк с пагинацией.
type Page struct {
	Rows []Row
	Meta api.Meta
}

// FilterSpec — один фильтр экрана с фиксированным набором значений.
type FilterSpec struct {
	Key     string
	Label   string
	Options []string
}

// RowAction — операция над строкой вне create/edit/delete
// (экспорт, сброс пароля, разблокировка). Run получает текущие параметры
// списка: экспорты уважают активный поиск и фильтры.
type RowAction struct {
	Key   string // клавиша
	Label string
	Run   func(ctx context.Context, row Row, q query.ListQuery) (string, error)
}

// Screen описывает один экран консоли.
// Nil-операция означает, что экран её не поддерживает.
type Screen struct {
	ID         string
	Title      string
	Columns    []string
	Searchable bool
	Filters    []FilterSpec

	Fetch func(ctx context.Context, q query.ListQuery) (*Page, error)

	// Tag — цветной тег статуса строки для статусной строки списка.
	Tag func(row Row) (status.Tag, bool)

	FormSpecs []FieldSpec
	FileSpecs []FileFieldSpec
	Create    func(ctx context.Context, body map[string]interface{}) error
	Update    func(ctx context.Context, id string, body map[string]interface{}) error
	Delete    func(ctx context.Context, id string) error

	Actions []RowAction
}

// CanCreate сообщает, поддерживает ли экран создание записей.
func (s *Screen) CanCreate() bool { return s.Create != nil }

// CanEdit сообщает, поддерживает ли экран редактирование.
func (s *Screen) CanEdit() bool { return s.Update != nil }

// CanDelete сообщает, поддерживает ли экран удаление.
func (s *Screen) CanDelete() bool { return s.Delete != nil }

// Deps — зависимости экранов, собираются в main().
type Deps struct {
	API      *api.Client
	Store    *query.Store
	Imports  *importjob.Client
	Uploader upload.Uploader
	Saver    *export.Saver
	History  *history.Log

	// Events — подписка на фоновые события (загрузки, экспорты, очередь
	// импортов). nil допустим — строка статуса просто не получает событий.
	Events events.Subscriber

	// Actor — email залогиненного администратора для журнала действий
	Actor string
}

// record пишет действие в локальный журнал. Ошибка журнала не должна
// ломать основную операцию — только лог.
func (d *Deps) record(ctx context.Context, resource, action, targetID, detail string) {
	if d.History == nil {
		return
	}
	_ = d.History.Record(ctx, history.Entry{
		Actor:    d.Actor,
		Resource: resource,
		Action:   action,
		TargetID: targetID,
		Detail:   detail,
	})
}

// NewScreens собирает все экраны консоли.
func NewScreens(d *Deps) []*Screen {
	return []*Screen{
		d.dealersScreen(),
		d.productsScreen(),
		d.ordersScreen(),
		d.backordersScreen(),
		d.importLogsScreen(),
		d.adminsScreen(),
		d.bannersScreen(),
		d.externalLinksScreen(),
		d.newsScreen(),
		d.exclusivePartsScreen(),
		d.marqueeScreen(),
		d.historyScreen(),
	}
}

// ============================================================================
// Dealers
// ============================================================================

func (d *Deps) dealersScreen() *Screen {
	res := query.NewResource[api.Dealer]("dealers", d.API, d.Store, query.Endpoints{
		List:   "/user/dealer",
		Create: "/user/dealer",
	})

	screen := &Screen{
		ID:         "dealers",
		Title:      "Dealers",
		Columns:    []string{"Account", "Company", "Email", "Tier", "Status", "Locked"},
		Searchable: true,
		Filters: []FilterSpec{
			{Key: "status", Label: "Status", Options: []string{"Active", "Inactive", "Suspended"}},
			{Key: "tier", Label: "Tier", Options: []string{"Net1", "Net2", "Net3", "Net4", "Net5", "Net6", "Net7"}},
		},
		FormSpecs: []FieldSpec{
			{Key: "accountNum", Label: "Account number", Required: true},
			{Key: "companyName", Label: "Company", Required: true},
			{Key: "email", Label: "Email", Required: true},
			{Key: "firstName", Label: "First name", Required: true},
			{Key: "lastName", Label: "Last name", Required: true},
			{Key: "phone", Label: "Phone"},
			{Key: "tier", Label: "Tier (Net1..Net7)", Required: true},
			{Key: "creditLimit", Label: "Credit limit"},
			{Key: "dispatchMethod", Label: "Dispatch method"},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, dealer := range page.Items {
			profile := dealer.Dealer
			if profile == nil {
				profile = &api.DealerProfile{}
			}
			locked := ""
			if profile.Locked {
				locked = "locked"
			}
			out.Rows = append(out.Rows, Row{
				ID: dealer.ID,
				Cells: []string{
					profile.AccountNum,
					profile.CompanyName,
					dealer.Email,
					profile.Tier,
					status.DealerStatus(profile.Status).Label,
					locked,
				},
				Fields: map[string]string{
					"accountNum":   profile.AccountNum,
					"companyName":  profile.CompanyName,
					"email":        dealer.Email,
					"firstName":    dealer.FirstName,
					"lastName":     dealer.LastName,
					"phone":        dealer.Phone,
					"tier":         profile.Tier,
					"creditLimit":  formatFloat(profile.CreditLimit),
					"_status":      profile.Status,
				},
			})
		}
		return out, nil
	}

	screen.Tag = func(row Row) (status.Tag, bool) {
		raw, ok := row.Fields["_status"]
		if !ok {
			return status.Tag{}, false
		}
		return status.DealerStatus(raw), true
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		if _, err := res.Create(ctx, body); err != nil {
			return err
		}
		d.record(ctx, "dealers", "create", "", fmt.Sprintf("account %v", body["accountNum"]))
		return nil
	}

	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		path := fmt.Sprintf("/user/dealer-update-admin/%s", id)
		if err := d.API.Put(ctx, "dealer_update", path, body, nil); err != nil {
			return err
		}
		res.Invalidate()
		d.record(ctx, "dealers", "update", id, fmt.Sprintf("account %v", body["accountNum"]))
		return nil
	}

	screen.Actions = []RowAction{
		{
			Key:   "t",
			Label: "Toggle active",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				// Suspended никогда не выставляется из консоли: это
				// статус backend-процессов. Переключаем только Active/Inactive.
				next := "Active"
				if row.Fields["_status"] == "Active" {
					next = "Inactive"
				}
				if err := d.API.SetDealerStatus(ctx, row.ID, next); err != nil {
					return "", err
				}
				res.Invalidate()
				d.record(ctx, "dealers", "status", row.ID, "-> "+next)
				return "Status set to " + next, nil
			},
		},
		{
			Key:   "r",
			Label: "Reset password",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				if err := d.API.ResetDealerPassword(ctx, row.ID); err != nil {
					return "", err
				}
				d.record(ctx, "dealers", "reset_password", row.ID, "")
				return "Password reset email sent", nil
			},
		},
		{
			Key:   "u",
			Label: "Unlock",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				if err := d.API.UnlockDealer(ctx, row.ID); err != nil {
					return "", err
				}
				res.Invalidate()
				d.record(ctx, "dealers", "unlock", row.ID, "")
				return "Account unlocked", nil
			},
		},
	}

	return screen
}

// ============================================================================
// Products
// ============================================================================

func (d *Deps) productsScreen() *Screen {
	// Записи каталога появляются только через импорт: создания и
	// удаления на backend нет, консоль умеет лишь править карточку.
	res := query.NewResource[api.Product]("products", d.API, d.Store, query.Endpoints{
		List:   "/products/admin",
		Item:   "/products/%s",
		Update: "/products/%s",
	})

	screen := &Screen{
		ID:         "products",
		Title:      "Products",
		Columns:    []string{"Part number", "Description", "Type", "Price", "Stock"},
		Searchable: true,
		Filters: []FilterSpec{
			{Key: "productType", Label: "Type", Options: []string{"Genuine", "Aftermarket", "Branded"}},
		},
		FormSpecs: []FieldSpec{
			{Key: "partNumber", Label: "Part number", Required: true},
			{Key: "description", Label: "Description", Required: true},
			{Key: "productType", Label: "Type (Genuine/Aftermarket/Branded)", Required: true},
			{Key: "price", Label: "Price", Required: true},
			{Key: "stock", Label: "Stock"},
			{Key: "weight", Label: "Weight"},
			{Key: "barcode", Label: "Barcode"},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, p := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: p.ID,
				Cells: []string{
					p.PartNumber,
					p.Description,
					status.ProductType(p.ProductType).Label,
					formatFloat(p.Price),
					strconv.Itoa(p.Stock),
				},
				Fields: map[string]string{
					"partNumber":  p.PartNumber,
					"description": p.Description,
					"productType": p.ProductType,
					"price":       formatFloat(p.Price),
					"stock":       strconv.Itoa(p.Stock),
				},
			})
		}
		return out, nil
	}

	screen.Tag = func(row Row) (status.Tag, bool) {
		raw, ok := row.Fields["productType"]
		if !ok {
			return status.Tag{}, false
		}
		return status.ProductType(raw), true
	}

	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		if _, err := res.Update(ctx, id, numericFields(body, "price", "stock", "weight")); err != nil {
			return err
		}
		d.record(ctx, "products", "update", id, fmt.Sprintf("part %v", body["partNumber"]))
		return nil
	}

	return screen
}

// ============================================================================
// Orders
// ============================================================================

func (d *Deps) ordersScreen() *Screen {
	res := query.NewResource[api.Order]("orders", d.API, d.Store, query.Endpoints{
		List: "/orders",
	})

	screen := &Screen{
		ID:         "orders",
		Title:      "Orders",
		Columns:    []string{"Order", "Account", "Company", "Status", "Total", "Created"},
		Searchable: true,
		Filters: []FilterSpec{
			{Key: "status", Label: "Status", Options: []string{
				"CREATED", "PROCESSING", "BACKORDER", "READY_FOR_SHIPMENT", "FULLFILLED", "CANCELLED",
			}},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, o := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: o.ID,
				Cells: []string{
					o.OrderNumber,
					o.AccountNum,
					o.CompanyName,
					status.OrderStatus(o.Status).Label,
					formatFloat(o.Total),
					o.CreatedAt,
				},
				Fields: map[string]string{"_status": o.Status},
			})
		}
		return out, nil
	}

	screen.Tag = func(row Row) (status.Tag, bool) {
		raw, ok := row.Fields["_status"]
		if !ok {
			return status.Tag{}, false
		}
		return status.OrderStatus(raw), true
	}

	screen.Actions = []RowAction{
		{
			Key:   "x",
			Label: "Export order",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				blob, err := d.API.ExportOrder(ctx, row.ID)
				if err != nil {
					return "", err
				}
				path, err := d.Saver.Save(blob, "order-"+row.ID+".xlsx")
				if err != nil {
					return "", err
				}
				d.record(ctx, "orders", "export", row.ID, path)
				return "Saved " + path, nil
			},
		},
		{
			Key:   "X",
			Label: "Export all",
			Run: func(ctx context.Context, _ Row, q query.ListQuery) (string, error) {
				blob, err := d.API.ExportOrders(ctx, q.FilterValues())
				if err != nil {
					return "", err
				}
				path, err := d.Saver.Save(blob, "orders.xlsx")
				if err != nil {
					return "", err
				}
				d.record(ctx, "orders", "export", "", path)
				return "Saved " + path, nil
			},
		},
	}

	return screen
}

// ============================================================================
// Backorders
// ============================================================================

func (d *Deps) backordersScreen() *Screen {
	res := query.NewResource[api.BackorderProduct]("backorders", d.API, d.Store, query.Endpoints{
		List: "/orders/backorders/products",
	})

	screen := &Screen{
		ID:         "backorders",
		Title:      "Backorders",
		Columns:    []string{"Part number", "Description", "Qty", "Orders", "Oldest"},
		Searchable: true,
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for i, b := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: strconv.Itoa(i),
				Cells: []string{
					b.PartNumber,
					b.Description,
					strconv.Itoa(b.Quantity),
					strconv.Itoa(b.OrderCount),
					b.OldestOrder,
				},
			})
		}
		return out, nil
	}

	screen.Actions = []RowAction{
		{
			Key:   "x",
			Label: "Export",
			Run: func(ctx context.Context, _ Row, q query.ListQuery) (string, error) {
				blob, err := d.API.ExportBackorders(ctx, q.FilterValues())
				if err != nil {
					return "", err
				}
				path, err := d.Saver.Save(blob, "backorders.xlsx")
				if err != nil {
					return "", err
				}
				d.record(ctx, "backorders", "export", "", path)
				return "Saved " + path, nil
			},
		},
	}

	return screen
}

// ============================================================================
// Import logs
// ============================================================================

func (d *Deps) importLogsScreen() *Screen {
	res := query.NewResource[api.ImportLog](importjob.LogResourceName, d.API, d.Store, query.Endpoints{
		List: "/import",
	})

	screen := &Screen{
		ID:      importjob.LogResourceName,
		Title:   "Imports",
		Columns: []string{"Type", "Status", "File", "Rows", "Errors", "Created"},
		Filters: []FilterSpec{
			{Key: "type", Label: "Type", Options: []string{"PARTS", "DEALERS", "SUPERSEDED", "BACKORDER", "ORDER_STATUS"}},
			{Key: "status", Label: "Status", Options: []string{"PENDING", "PROCESSING", "COMPLETED", "FAILED"}},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, l := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: l.ID,
				Cells: []string{
					status.ImportType(l.Type).Label,
					status.ImportStatus(l.Status).Label,
					l.Filename,
					strconv.Itoa(l.TotalRows),
					strconv.Itoa(l.ErrorRows),
					l.CreatedAt,
				},
				Fields: map[string]string{"_type": l.Type, "_status": l.Status},
			})
		}
		return out, nil
	}

	screen.Tag = func(row Row) (status.Tag, bool) {
		raw, ok := row.Fields["_status"]
		if !ok {
			return status.Tag{}, false
		}
		return status.ImportStatus(raw), true
	}

	screen.Actions = []RowAction{
		{
			Key:   "x",
			Label: "Export errors",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				blob, err := d.Imports.ErrorsExport(ctx, row.ID)
				if err != nil {
					return "", err
				}
				path, err := d.Saver.Save(blob, "import-errors-"+row.ID+".xlsx")
				if err != nil {
					return "", err
				}
				return "Saved " + path, nil
			},
		},
	}

	return screen
}

// ============================================================================
// Admin users
// ============================================================================

func (d *Deps) adminsScreen() *Screen {
	res := query.NewResource[api.AdminUser]("admins", d.API, d.Store, query.Endpoints{
		List:   "/user/admin",
		Create: "/user/admin",
		Update: "/user/admin-update/%s",
	})

	screen := &Screen{
		ID:         "admins",
		Title:      "Admins",
		Columns:    []string{"Email", "Name", "Role", "Active"},
		Searchable: true,
		FormSpecs: []FieldSpec{
			{Key: "email", Label: "Email", Required: true},
			{Key: "firstName", Label: "First name", Required: true},
			{Key: "lastName", Label: "Last name", Required: true},
			{Key: "role", Label: "Role"},
			{Key: "password", Label: "Password", Secret: true},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, a := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: a.ID,
				Cells: []string{
					a.Email,
					a.FirstName + " " + a.LastName,
					a.Role,
					status.Active(a.Active).Label,
				},
				Fields: map[string]string{
					"email":     a.Email,
					"firstName": a.FirstName,
					"lastName":  a.LastName,
					"role":      a.Role,
					"_active":   strconv.FormatBool(a.Active),
				},
			})
		}
		return out, nil
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		if _, err := res.Create(ctx, body); err != nil {
			return err
		}
		d.record(ctx, "admins", "create", "", fmt.Sprintf("%v", body["email"]))
		return nil
	}
	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		if _, err := res.Update(ctx, id, body); err != nil {
			return err
		}
		d.record(ctx, "admins", "update", id, "")
		return nil
	}
	screen.Actions = []RowAction{
		{
			Key:   "t",
			Label: "Toggle active",
			Run: func(ctx context.Context, row Row, _ query.ListQuery) (string, error) {
				next := row.Fields["_active"] != "true"
				if err := d.API.SetAdminStatus(ctx, row.ID, next); err != nil {
					return "", err
				}
				res.Invalidate()
				d.record(ctx, "admins", "status", row.ID, fmt.Sprintf("-> %t", next))
				if next {
					return "Admin activated", nil
				}
				return "Admin deactivated", nil
			},
		},
	}

	return screen
}

// ============================================================================
// CMS: banners, external links, news, exclusive parts
// ============================================================================

func (d *Deps) bannersScreen() *Screen {
	res := query.NewResource[api.Banner]("banners", d.API, d.Store, query.Endpoints{
		List:   "/cms/banner",
		Create: "/cms/banner",
		Update: "/cms/banner/%s",
		Delete: "/cms/banner/%s",
	})

	screen := &Screen{
		ID:      "banners",
		Title:   "Banners",
		Columns: []string{"Title", "Image", "Link", "Order", "Active"},
		FormSpecs: []FieldSpec{
			{Key: "title", Label: "Title", Required: true},
			{Key: "linkUrl", Label: "Link URL"},
			{Key: "ordering", Label: "Order"},
		},
		FileSpecs: []FileFieldSpec{
			// JSON поле называется "imgae" — опечатка закреплена в контракте
			{Key: "imgae", Label: "Image", Required: true},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, b := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID: b.ID,
				Cells: []string{
					b.Title,
					b.ImageURL,
					b.LinkURL,
					strconv.Itoa(b.Ordering),
					status.Active(b.Active).Label,
				},
				Fields: map[string]string{
					"title":    b.Title,
					"linkUrl":  b.LinkURL,
					"ordering": strconv.Itoa(b.Ordering),
					"imgae":    b.ImageURL,
				},
			})
		}
		return out, nil
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		if _, err := res.Create(ctx, numericFields(body, "ordering")); err != nil {
			return err
		}
		d.record(ctx, "banners", "create", "", fmt.Sprintf("%v", body["title"]))
		return nil
	}
	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		if _, err := res.Update(ctx, id, numericFields(body, "ordering")); err != nil {
			return err
		}
		d.record(ctx, "banners", "update", id, "")
		return nil
	}
	screen.Delete = func(ctx context.Context, id string) error {
		if err := res.Delete(ctx, id); err != nil {
			return err
		}
		d.record(ctx, "banners", "delete", id, "")
		return nil
	}

	return screen
}

func (d *Deps) externalLinksScreen() *Screen {
	res := query.NewResource[api.ExternalLink]("external_links", d.API, d.Store, query.Endpoints{
		List:   "/cms/external-links",
		Create: "/cms/external-links",
		Update: "/cms/external-links/%s",
		Delete: "/cms/external-links/%s",
	})

	screen := &Screen{
		ID:      "external_links",
		Title:   "External links",
		Columns: []string{"Title", "URL", "Order"},
		FormSpecs: []FieldSpec{
			{Key: "title", Label: "Title", Required: true},
			{Key: "url", Label: "URL", Required: true},
			{Key: "ordering", Label: "Order"},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, l := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID:    l.ID,
				Cells: []string{l.Title, l.URL, strconv.Itoa(l.Ordering)},
				Fields: map[string]string{
					"title":    l.Title,
					"url":      l.URL,
					"ordering": strconv.Itoa(l.Ordering),
				},
			})
		}
		return out, nil
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		_, err := res.Create(ctx, numericFields(body, "ordering"))
		return err
	}
	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		_, err := res.Update(ctx, id, numericFields(body, "ordering"))
		return err
	}
	screen.Delete = func(ctx context.Context, id string) error {
		return res.Delete(ctx, id)
	}

	return screen
}

func (d *Deps) newsScreen() *Screen {
	res := query.NewResource[api.NewsOffer]("news_offers", d.API, d.Store, query.Endpoints{
		List:   "/cms/news-offers",
		Create: "/cms/news-offers",
		Update: "/cms/news-offers/%s",
		Delete: "/cms/news-offers/%s",
	})

	screen := &Screen{
		ID:      "news_offers",
		Title:   "News & offers",
		Columns: []string{"Title", "Active"},
		FormSpecs: []FieldSpec{
			{Key: "title", Label: "Title", Required: true},
			{Key: "body", Label: "Body"},
		},
		FileSpecs: []FileFieldSpec{
			{Key: "imageUrl", Label: "Image"},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, n := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID:    n.ID,
				Cells: []string{n.Title, status.Active(n.Active).Label},
				Fields: map[string]string{
					"title":    n.Title,
					"body":     n.Body,
					"imageUrl": n.ImageURL,
				},
			})
		}
		return out, nil
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		_, err := res.Create(ctx, body)
		return err
	}
	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		_, err := res.Update(ctx, id, body)
		return err
	}
	screen.Delete = func(ctx context.Context, id string) error {
		return res.Delete(ctx, id)
	}

	return screen
}

func (d *Deps) exclusivePartsScreen() *Screen {
	res := query.NewResource[api.ExclusivePart]("exclusive_parts", d.API, d.Store, query.Endpoints{
		List:   "/cms/exclusive-parts",
		Create: "/cms/exclusive-parts",
		Update: "/cms/exclusive-parts/%s",
		Delete: "/cms/exclusive-parts/%s",
	})

	screen := &Screen{
		ID:      "exclusive_parts",
		Title:   "Exclusive parts",
		Columns: []string{"Title", "Image", "Link"},
		FormSpecs: []FieldSpec{
			{Key: "title", Label: "Title", Required: true},
			{Key: "linkUrl", Label: "Link URL"},
		},
		FileSpecs: []FileFieldSpec{
			{Key: "imgae", Label: "Image", Required: true},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		page, err := res.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: page.Meta}
		for _, p := range page.Items {
			out.Rows = append(out.Rows, Row{
				ID:    p.ID,
				Cells: []string{p.Title, p.ImageURL, p.LinkURL},
				Fields: map[string]string{
					"title":   p.Title,
					"linkUrl": p.LinkURL,
					"imgae":   p.ImageURL,
				},
			})
		}
		return out, nil
	}

	screen.Create = func(ctx context.Context, body map[string]interface{}) error {
		_, err := res.Create(ctx, body)
		return err
	}
	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		_, err := res.Update(ctx, id, body)
		return err
	}
	screen.Delete = func(ctx context.Context, id string) error {
		return res.Delete(ctx, id)
	}

	return screen
}

// marqueeScreen — singleton бегущей строки портала: одна запись,
// только редактирование.
func (d *Deps) marqueeScreen() *Screen {
	screen := &Screen{
		ID:      "marquee",
		Title:   "Marquee",
		Columns: []string{"Text", "Active"},
		FormSpecs: []FieldSpec{
			{Key: "text", Label: "Text", Required: true},
			{Key: "active", Label: "Active (true/false)"},
		},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		var resp api.ItemResponse[api.Marquee]
		if err := d.API.Get(ctx, "marquee", "/cms/marquee", nil, &resp); err != nil {
			return nil, err
		}
		m := resp.Data
		return &Page{
			Meta: api.Meta{Page: 1, Limit: 1, Total: 1, TotalPages: 1},
			Rows: []Row{{
				ID:    m.ID,
				Cells: []string{m.Text, status.Active(m.Active).Label},
				Fields: map[string]string{
					"text":   m.Text,
					"active": strconv.FormatBool(m.Active),
				},
			}},
		}, nil
	}

	screen.Update = func(ctx context.Context, id string, body map[string]interface{}) error {
		if raw, ok := body["active"].(string); ok {
			body["active"] = raw == "true"
		}
		path := fmt.Sprintf("/cms/marquee/%s", id)
		if err := d.API.Put(ctx, "marquee_update", path, body, nil); err != nil {
			return err
		}
		d.record(ctx, "marquee", "update", id, fmt.Sprintf("%v", body["text"]))
		return nil
	}

	return screen
}

// ============================================================================
// Local action history
// ============================================================================

func (d *Deps) historyScreen() *Screen {
	screen := &Screen{
		ID:      "history",
		Title:   "Local history",
		Columns: []string{"Time", "Actor", "Resource", "Action", "Target", "Detail"},
	}

	screen.Fetch = func(ctx context.Context, q query.ListQuery) (*Page, error) {
		if d.History == nil {
			return &Page{}, nil
		}
		entries, err := d.History.Recent(ctx, q.Limit)
		if err != nil {
			return nil, err
		}
		out := &Page{Meta: api.Meta{Page: 1, Limit: q.Limit, Total: len(entries), TotalPages: 1}}
		for _, e := range entries {
			out.Rows = append(out.Rows, Row{
				ID: strconv.FormatInt(e.ID, 10),
				Cells: []string{
					e.At.Format("2006-01-02 15:04"),
					e.Actor,
					e.Resource,
					e.Action,
					e.TargetID,
					e.Detail,
				},
			})
		}
		return out, nil
	}

	return screen
}

// ============================================================================
// helpers
// ============================================================================

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericFields конвертирует перечисленные строковые значения тела в числа.
// Backend ждет числа, форма хранит строки.
func numericFields(body map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		raw, ok := body[key].(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			body[key] = n
			continue
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			body[key] = f
		}
	}
	return body
}
