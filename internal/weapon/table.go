package weapon

import (
	"errors"
	"fmt"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

var (
	// ErrMissingDefinition 定义表缺少某个武器类型
	ErrMissingDefinition = errors.New("武器定义缺失")
	// ErrDuplicateDefinition 同一武器类型出现多次
	ErrDuplicateDefinition = errors.New("武器定义重复")
)

// Definitions 武器定义查询
type Definitions interface {
	Get(t models.WeaponType) models.WeaponDefinition
}

// Table 武器定义表，创建后只读
type Table struct {
	defs map[models.WeaponType]models.WeaponDefinition
}

// NewTable 创建定义表，每个已声明的武器类型都必须恰好有一条定义
func NewTable(defs []models.WeaponDefinition) (*Table, error) {
	t := &Table{defs: make(map[models.WeaponType]models.WeaponDefinition, len(defs))}
	for _, def := range defs {
		if _, exists := t.defs[def.Type]; exists {
			return nil, fmt.Errorf("%s: %w", def.Type, ErrDuplicateDefinition)
		}
		t.defs[def.Type] = def
	}

	for _, wt := range models.AllWeaponTypes {
		if _, ok := t.defs[wt]; !ok {
			return nil, fmt.Errorf("%s: %w", wt, ErrMissingDefinition)
		}
	}
	return t, nil
}

// Get 获取武器定义。缺失说明启动时的校验被绕过，直接 panic
func (t *Table) Get(wt models.WeaponType) models.WeaponDefinition {
	def, ok := t.defs[wt]
	if !ok {
		panic(fmt.Sprintf("weapon: 没有 %q 的定义", wt))
	}
	return def
}

// All 按声明顺序返回全部定义
func (t *Table) All() []models.WeaponDefinition {
	out := make([]models.WeaponDefinition, 0, len(models.AllWeaponTypes))
	for _, wt := range models.AllWeaponTypes {
		out = append(out, t.defs[wt])
	}
	return out
}
