package api

// ============================================================================
// Конверты ответов backend
// ============================================================================

// Meta — информация о пагинации списочных ответов.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResponse — конверт списочного ответа: {success, data: [], meta}.
type ListResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Meta    Meta `json:"meta"`
}

// ItemResponse — конверт одиночного ответа: {success, data}.
type ItemResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// ============================================================================
// Dealers
// ============================================================================

// DealerProfile — вложенный профиль дилера внутри пользовательской записи.
type DealerProfile struct {
	ID           string `json:"id"`
	AccountNum   string `json:"accountNum"`
	CompanyName  string `json:"companyName"`
	Tier         string `json:"tier"` // Net1..Net7
	Status       string `json:"status"`
	CreditLimit  float64 `json:"creditLimit"`
	Locked       bool   `json:"locked"`
	DispatchCode string `json:"dispatchCode,omitempty"`
}

// Dealer — запись дилера из /user/dealer.
// Backend возвращает пользователя с вложенным объектом dealer.
type Dealer struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Phone     string         `json:"phone,omitempty"`
	Active    bool           `json:"active"`
	Dealer    *DealerProfile `json:"dealer,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

// DealerInput — тело create/update дилера.
type DealerInput struct {
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Phone       string  `json:"phone,omitempty"`
	AccountNum  string  `json:"accountNum"`
	CompanyName string  `json:"companyName"`
	Tier        string  `json:"tier"`
	CreditLimit float64 `json:"creditLimit,omitempty"`
	Dispatch    string  `json:"dispatchMethod,omitempty"`
}

// ============================================================================
// Admin users
// ============================================================================

type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
	Active    bool   `json:"active"`
}

type AdminUserInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
}

// ============================================================================
// Products
// ============================================================================

// Product — строка списка /products/admin.
type Product struct {
	ID          string  `json:"id"`
	PartNumber  string  `json:"partNumber"`
	Description string  `json:"description"`
	ProductType string  `json:"productType"` // Genuine | Aftermarket | Branded
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Superseded  string  `json:"supersededBy,omitempty"`
}

// ProductDetail — детальная карточка /products/{id}.
type ProductDetail struct {
	Product
	Weight     float64            `json:"weight,omitempty"`
	Barcode    string             `json:"barcode,omitempty"`
	Images     []string           `json:"images,omitempty"`
	TierPrices map[string]float64 `json:"tierPrices,omitempty"`
}

type ProductInput struct {
	PartNumber  string  `json:"partNumber"`
	Description string  `json:"description"`
	ProductType string  `json:"productType"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Weight      float64 `json:"weight,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
}

// ============================================================================
// Orders
// ============================================================================

type Order struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	AccountNum  string  `json:"accountNum"`
	CompanyName string  `json:"companyName,omitempty"`
	Status      string  `json:"status"` // CREATED | PROCESSING | BACKORDER | READY_FOR_SHIPMENT | FULLFILLED | CANCELLED
	Total       float64 `json:"total"`
	ItemCount   int     `json:"itemCount,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// BackorderProduct — строка /orders/backorders/products.
type BackorderProduct struct {
	PartNumber  string `json:"partNumber"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	OrderCount  int    `json:"orderCount"`
	OldestOrder string `json:"oldestOrder,omitempty"`
}

// ============================================================================
// Imports
// ============================================================================

// ImportLog — запись журнала импортов.
type ImportLog struct {
	ID          string `json:"id"`
	Type        string `json:"type"`   // PARTS | DEALERS | SUPERSEDED | BACKORDER | ORDER_STATUS
	Status      string `json:"status"` // PENDING | PROCESSING | COMPLETED | FAILED
	Filename    string `json:"filename,omitempty"`
	TotalRows   int    `json:"totalRows,omitempty"`
	ErrorRows   int    `json:"errorRows,omitempty"`
	CreatedAt   string `json:"createdAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// ImportStats — агрегаты по одному импорту (/import/{id}/stats).
type ImportStats struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	TotalRows    int    `json:"totalRows"`
	SuccessCount int    `json:"successCount"`
	ErrorCount   int    `json:"errorCount"`
}

// ImportErrorItem — одна ошибка строки импорта (/import/{id}/errors).
type ImportErrorItem struct {
	RowNumber int      `json:"rowNumber"`
	RowData   string   `json:"rowData,omitempty"`
	Errors    []string `json:"errors"`
}

// ImportAccepted — сырой ответ на загрузку файла импорта.
//
// Backend не отдает явный дискриминатор: синхронная обработка возвращает
// счетчики, асинхронная — jobId и statusUrl. Классификацию по форме
// делает pkg/importjob сразу после парсинга.
type ImportAccepted struct {
	TotalRows    int    `json:"totalRows"`
	SuccessCount int    `json:"successCount"`
	ErrorCount   int    `json:"errorCount"`
	JobID        string `json:"jobId,omitempty"`
	StatusURL    string `json:"statusUrl,omitempty"`
}

// ============================================================================
// CMS
// ============================================================================

// Banner — баннер главной страницы.
//
// Поле картинки в JSON называется "imgae" — опечатка закреплена в контракте
// backend, менять нельзя.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imgae"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Ordering int    `json:"ordering,omitempty"`
	Active   bool   `json:"active"`
}

type BannerInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"imgae"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Ordering int    `json:"ordering,omitempty"`
	Active   bool   `json:"active"`
}

type ExternalLink struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Ordering int    `json:"ordering,omitempty"`
}

type ExternalLinkInput struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Ordering int    `json:"ordering,omitempty"`
}

type NewsOffer struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Active   bool   `json:"active"`
}

type NewsOfferInput struct {
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Active   bool   `json:"active"`
}

// ExclusivePart — карточка "эксклюзивной детали" CMS.
// Как и Banner, использует поле "imgae".
type ExclusivePart struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imgae"`
	LinkURL  string `json:"linkUrl,omitempty"`
}

type ExclusivePartInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"imgae"`
	LinkURL  string `json:"linkUrl,omitempty"`
}

// Marquee — бегущая строка на портале (singleton).
type Marquee struct {
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

// ============================================================================
// Master data
// ============================================================================

type DispatchMethod struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type DealerStatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ============================================================================
// Uploads
// ============================================================================

// UploadedFile — элемент ответа /azure/upload.
type UploadedFile struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}
