package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"gorm.io/gorm"

	"shop_chatbot_v1_202608/internal/model"
	"shop_chatbot_v1_202608/pkg/database"
)

// SampleLimit 抽样导入模式下每个实体最多读取的源记录数
const SampleLimit = 1000

// 数据源文件名（相对数据目录）
const (
	FileDistributionCenters = "distribution_centers.csv"
	FileProducts            = "products.csv"
	FileUsers               = "users.csv"
	FileOrders              = "orders.csv"
	FileInventoryItems      = "inventory_items.csv"
	FileOrderItems          = "order_items.csv"
)

// ==================== LoadReport 单实体导入报表 ====================

// LoadReport 单个实体一次导入的结果
type LoadReport struct {
	Entity        string
	SourceRows    int     // 源记录数
	ParseFailures []error // 记录级解析失败（逐条隔离，不中止批次）
	Skipped       int     // 引用校验跳过的记录数（目前只有订单）
	Written       int64   // 成功提交的记录数
	FailedBatches int     // 回滚的批次数
}

// Summary 单行汇总，供日志输出
func (r *LoadReport) Summary() string {
	return fmt.Sprintf("%s: 源 %d 条, 写入 %d 条, 跳过 %d 条, 解析失败 %d 条, 失败批次 %d",
		r.Entity, r.SourceRows, r.Written, r.Skipped, len(r.ParseFailures), r.FailedBatches)
}

// ==================== Loader 导入编排器 ====================

// Loader 批量导入编排器
// 持有显式传入的数据库句柄，串行执行各实体导入，不维护任何全局状态
type Loader struct {
	db        *gorm.DB
	dataDir   string
	batchSize int
}

// NewLoader 创建导入编排器
func NewLoader(db *gorm.DB, dataDir string) *Loader {
	return &Loader{
		db:        db,
		dataDir:   dataDir,
		batchSize: DefaultBatchSize,
	}
}

// SetBatchSize 覆盖默认批大小（测试用）
func (l *Loader) SetBatchSize(n int) {
	l.batchSize = n
}

// path 拼出某个数据源文件的完整路径
func (l *Loader) path(name string) string {
	return filepath.Join(l.dataDir, name)
}

// ==================== 两种导入模式 ====================

// RunFull 全量导入：整库重建后按依赖顺序导入全部六类实体
// 破坏性操作——既有数据（包括对话历史）全部丢弃
// 各实体导入是独立工作单元：某个实体导入抛出错误会中止后续导入，
// 但不回滚已经提交的实体（跨实体没有补偿事务）
func (l *Loader) RunFull(ctx context.Context) ([]*LoadReport, error) {
	log.Println("🚀 开始全量数据导入...")

	if err := database.TestConnection(ctx, l.db); err != nil {
		return nil, err
	}

	// 整库重建
	models := model.AllModels()
	if err := database.DropAll(ctx, l.db, models...); err != nil {
		return nil, err
	}
	if err := l.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("建表失败: %w", err)
	}

	var reports []*LoadReport

	// 按依赖顺序导入。注意 order_items 排在 inventory_items 之后：
	// order_items 的外键不做导入期校验，先写被引用方再写引用方即可
	steps := []func(context.Context) (*LoadReport, error){
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadDistributionCenters(ctx, l.path(FileDistributionCenters), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadProducts(ctx, l.path(FileProducts), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadUsers(ctx, l.path(FileUsers), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadOrders(ctx, l.path(FileOrders), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadInventoryItems(ctx, l.path(FileInventoryItems), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadOrderItems(ctx, l.path(FileOrderItems), 0)
		},
	}

	for _, step := range steps {
		report, err := step(ctx)
		if err != nil {
			// 未预期的错误向上传播，后续实体不再导入，库里保留最后一次成功提交的状态
			return reports, err
		}
		reports = append(reports, report)
	}

	l.logSummary(reports)
	log.Println("🎉 全量数据导入完成!")
	return reports, nil
}

// RunSample 抽样导入：非破坏性建表，只导入演示所需的有限数据
// 配送中心全量（数据很小），商品/用户/订单各取源文件前 1000 条
// 不导入库存项和订单项
func (l *Loader) RunSample(ctx context.Context) ([]*LoadReport, error) {
	log.Println("🚀 开始抽样数据导入...")

	if err := database.TestConnection(ctx, l.db); err != nil {
		return nil, err
	}

	if err := l.db.WithContext(ctx).AutoMigrate(model.AllModels()...); err != nil {
		return nil, fmt.Errorf("建表失败: %w", err)
	}

	var reports []*LoadReport

	steps := []func(context.Context) (*LoadReport, error){
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadDistributionCenters(ctx, l.path(FileDistributionCenters), 0)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadProducts(ctx, l.path(FileProducts), SampleLimit)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadUsers(ctx, l.path(FileUsers), SampleLimit)
		},
		func(ctx context.Context) (*LoadReport, error) {
			return l.LoadOrders(ctx, l.path(FileOrders), SampleLimit)
		},
	}

	for _, step := range steps {
		report, err := step(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	l.logSummary(reports)
	log.Println("🎉 抽样数据导入完成!")
	return reports, nil
}

func (l *Loader) logSummary(reports []*LoadReport) {
	log.Println("📊 导入汇总:")
	for _, r := range reports {
		log.Printf("  - %s", r.Summary())
	}
}

// ==================== 逐实体导入 ====================

// LoadDistributionCenters 导入配送中心
func (l *Loader) LoadDistributionCenters(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("📦 正在导入配送中心...")
	return loadEntity(ctx, l, "distribution_centers", csvPath, limit,
		distributionCenterColumns, parseDistributionCenter)
}

// LoadProducts 导入商品
func (l *Loader) LoadProducts(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("🛍️ 正在导入商品...")
	return loadEntity(ctx, l, "products", csvPath, limit, productColumns, parseProduct)
}

// LoadUsers 导入用户
func (l *Loader) LoadUsers(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("👥 正在导入用户...")
	return loadEntity(ctx, l, "users", csvPath, limit, userColumns, parseUser)
}

// LoadOrders 导入订单
// 唯一做导入期引用校验的地方：源数据已知含有孤儿 user_id，
// 引用不存在用户的订单逐条跳过并计数，不让整次导入失败
func (l *Loader) LoadOrders(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("📋 正在导入订单...")

	src, err := OpenSource(csvPath, orderColumns, limit)
	if err != nil {
		return nil, err
	}

	parsed, failures := parseAll(src, parseOrder)
	for _, f := range failures {
		log.Printf("⚠️ orders 解析失败: %v", f)
	}

	// 本次运行开始时的用户全集，只查一次
	userIDs, err := l.existingUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &LoadReport{
		Entity:        "orders",
		SourceRows:    src.Len(),
		ParseFailures: failures,
	}

	valid := make([]model.Order, 0, len(parsed))
	for _, o := range parsed {
		if _, ok := userIDs[o.UserID]; !ok {
			log.Printf("⚠️ 跳过订单 %d: 用户 %d 不存在", o.OrderID, o.UserID)
			report.Skipped++
			continue
		}
		valid = append(valid, o)
	}

	stats := WriteInBatches(ctx, l.db, "orders", valid, l.batchSize)
	report.Written = stats.Written
	report.FailedBatches = stats.FailedBatches

	log.Printf("✅ 订单导入完成: 写入 %d 条, 跳过 %d 条", report.Written, report.Skipped)
	return report, nil
}

// LoadInventoryItems 导入库存项
func (l *Loader) LoadInventoryItems(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("📊 正在导入库存项...")
	return loadEntity(ctx, l, "inventory_items", csvPath, limit,
		inventoryItemColumns, parseInventoryItem)
}

// LoadOrderItems 导入订单项
func (l *Loader) LoadOrderItems(ctx context.Context, csvPath string, limit int) (*LoadReport, error) {
	log.Println("🧾 正在导入订单项...")
	return loadEntity(ctx, l, "order_items", csvPath, limit,
		orderItemColumns, parseOrderItem)
}

// existingUserIDs 取库中全部用户 ID
func (l *Loader) existingUserIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	if err := l.db.WithContext(ctx).Model(&model.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("查询用户 ID 集合失败: %w", err)
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// loadEntity 无引用校验实体的通用导入路径：解析（逐条隔离）→ 分批写入
func loadEntity[T any](ctx context.Context, l *Loader, entity, csvPath string, limit int,
	columns []string, parse func(Row) (T, error)) (*LoadReport, error) {

	src, err := OpenSource(csvPath, columns, limit)
	if err != nil {
		return nil, err
	}

	parsed, failures := parseAll(src, parse)
	for _, f := range failures {
		log.Printf("⚠️ %s 解析失败: %v", entity, f)
	}

	stats := WriteInBatches(ctx, l.db, entity, parsed, l.batchSize)

	report := &LoadReport{
		Entity:        entity,
		SourceRows:    src.Len(),
		ParseFailures: failures,
		Written:       stats.Written,
		FailedBatches: stats.FailedBatches,
	}

	log.Printf("✅ %s 导入完成: 写入 %d / %d 条", entity, report.Written, report.SourceRows)
	return report, nil
}
