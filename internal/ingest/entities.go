package ingest

import (
	"shop_chatbot_v1_202608/internal/model"
)

// 各实体数据源的期望列集合（按列名精确匹配）
// 缺列时该实体的导入整体失败
var (
	distributionCenterColumns = []string{"id", "name", "latitude", "longitude"}

	productColumns = []string{
		"id", "cost", "category", "name", "brand",
		"retail_price", "department", "sku", "distribution_center_id",
	}

	userColumns = []string{
		"id", "first_name", "last_name", "email", "age", "gender",
		"state", "street_address", "postal_code", "city", "country",
		"latitude", "longitude", "traffic_source", "created_at",
	}

	orderColumns = []string{
		"order_id", "user_id", "status", "gender",
		"created_at", "returned_at", "shipped_at", "delivered_at", "num_of_item",
	}

	orderItemColumns = []string{
		"id", "order_id", "user_id", "product_id", "inventory_item_id",
		"status", "created_at", "shipped_at", "delivered_at", "returned_at",
	}

	inventoryItemColumns = []string{
		"id", "product_id", "created_at", "sold_at", "cost",
		"product_category", "product_name", "product_brand",
		"product_retail_price", "product_department", "product_sku",
		"product_distribution_center_id",
	}
)

// ==================== 逐实体字段映射 ====================

func parseDistributionCenter(r Row) (model.DistributionCenter, error) {
	var dc model.DistributionCenter
	var err error

	if dc.ID, err = reqInt64(r, "id"); err != nil {
		return dc, err
	}
	if dc.Name, err = reqString(r, "name"); err != nil {
		return dc, err
	}
	if dc.Latitude, err = optFloat64(r, "latitude"); err != nil {
		return dc, err
	}
	if dc.Longitude, err = optFloat64(r, "longitude"); err != nil {
		return dc, err
	}
	return dc, nil
}

func parseProduct(r Row) (model.Product, error) {
	var p model.Product
	var err error

	if p.ID, err = reqInt64(r, "id"); err != nil {
		return p, err
	}
	if p.Cost, err = optFloat64(r, "cost"); err != nil {
		return p, err
	}
	p.Category = optString(r, "category")
	p.Name = optString(r, "name")
	p.Brand = optString(r, "brand")
	if p.RetailPrice, err = optFloat64(r, "retail_price"); err != nil {
		return p, err
	}
	p.Department = optString(r, "department")
	p.SKU = optString(r, "sku")
	if p.DistributionCenterID, err = optInt64(r, "distribution_center_id"); err != nil {
		return p, err
	}
	return p, nil
}

func parseUser(r Row) (model.User, error) {
	var u model.User
	var err error

	if u.ID, err = reqInt64(r, "id"); err != nil {
		return u, err
	}
	u.FirstName = optString(r, "first_name")
	u.LastName = optString(r, "last_name")
	u.Email = optString(r, "email")
	if u.Age, err = optInt64(r, "age"); err != nil {
		return u, err
	}
	u.Gender = optString(r, "gender")
	u.State = optString(r, "state")
	u.StreetAddress = optString(r, "street_address")
	u.PostalCode = optString(r, "postal_code")
	u.City = optString(r, "city")
	u.Country = optString(r, "country")
	if u.Latitude, err = optFloat64(r, "latitude"); err != nil {
		return u, err
	}
	if u.Longitude, err = optFloat64(r, "longitude"); err != nil {
		return u, err
	}
	u.TrafficSource = optString(r, "traffic_source")
	u.CreatedAt = optTime(r, "created_at")
	return u, nil
}

func parseOrder(r Row) (model.Order, error) {
	var o model.Order
	var err error

	if o.OrderID, err = reqInt64(r, "order_id"); err != nil {
		return o, err
	}
	if o.UserID, err = reqInt64(r, "user_id"); err != nil {
		return o, err
	}
	if o.Status, err = reqString(r, "status"); err != nil {
		return o, err
	}
	o.Gender = optString(r, "gender")
	o.CreatedAt = optTime(r, "created_at")
	o.ReturnedAt = optTime(r, "returned_at")
	o.ShippedAt = optTime(r, "shipped_at")
	o.DeliveredAt = optTime(r, "delivered_at")
	if o.NumOfItem, err = optInt64(r, "num_of_item"); err != nil {
		return o, err
	}
	return o, nil
}

func parseOrderItem(r Row) (model.OrderItem, error) {
	var item model.OrderItem
	var err error

	if item.ID, err = reqInt64(r, "id"); err != nil {
		return item, err
	}
	if item.OrderID, err = optInt64(r, "order_id"); err != nil {
		return item, err
	}
	if item.UserID, err = optInt64(r, "user_id"); err != nil {
		return item, err
	}
	if item.ProductID, err = optInt64(r, "product_id"); err != nil {
		return item, err
	}
	if item.InventoryItemID, err = optInt64(r, "inventory_item_id"); err != nil {
		return item, err
	}
	item.Status = optString(r, "status")
	item.CreatedAt = optTime(r, "created_at")
	item.ShippedAt = optTime(r, "shipped_at")
	item.DeliveredAt = optTime(r, "delivered_at")
	item.ReturnedAt = optTime(r, "returned_at")
	return item, nil
}

func parseInventoryItem(r Row) (model.InventoryItem, error) {
	var inv model.InventoryItem
	var err error

	if inv.ID, err = reqInt64(r, "id"); err != nil {
		return inv, err
	}
	if inv.ProductID, err = optInt64(r, "product_id"); err != nil {
		return inv, err
	}
	inv.CreatedAt = optTime(r, "created_at")
	inv.SoldAt = optTime(r, "sold_at")
	if inv.Cost, err = optFloat64(r, "cost"); err != nil {
		return inv, err
	}
	inv.ProductCategory = optString(r, "product_category")
	inv.ProductName = optString(r, "product_name")
	inv.ProductBrand = optString(r, "product_brand")
	if inv.ProductRetailPrice, err = optFloat64(r, "product_retail_price"); err != nil {
		return inv, err
	}
	inv.ProductDepartment = optString(r, "product_department")
	inv.ProductSKU = optString(r, "product_sku")
	if inv.ProductDistributionCenterID, err = optInt64(r, "product_distribution_center_id"); err != nil {
		return inv, err
	}
	return inv, nil
}
