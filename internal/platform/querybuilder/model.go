package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelPlan is the db-tagged layout of one struct type.
type modelPlan struct {
	columns []string
	fields  [][]int
}

var plans sync.Map

func planFor(typ reflect.Type) (*modelPlan, error) {
	if cached, ok := plans.Load(typ); ok {
		return cached.(*modelPlan), nil
	}

	plan := &modelPlan{}
	collectColumns(typ, nil, plan)
	if len(plan.columns) == 0 {
		return nil, fmt.Errorf("%s has no db columns", typ)
	}
	actual, _ := plans.LoadOrStore(typ, plan)
	return actual.(*modelPlan), nil
}

// collectColumns walks exported fields. Untagged embedded structs are
// flattened so shared column sets can be reused across models.
func collectColumns(typ reflect.Type, prefix []int, plan *modelPlan) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)

		if field.Anonymous && name == "" && field.Type.Kind() == reflect.Struct {
			collectColumns(field.Type, index, plan)
			continue
		}
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		plan.columns = append(plan.columns, name)
		plan.fields = append(plan.fields, index)
	}
}

func modelValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}
	return value, nil
}

func (p *modelPlan) values(value reflect.Value) []any {
	out := make([]any, len(p.fields))
	for i, index := range p.fields {
		out[i] = value.FieldByIndex(index).Interface()
	}
	return out
}

// InsertModel builds an insert from the model's db tags. suffix may carry an
// ON CONFLICT or RETURNING clause.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, err := modelValue(model)
	if err != nil {
		return "", nil, err
	}
	plan, err := planFor(value.Type())
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(plan.columns...).Values(plan.values(value)...).Suffix(suffix).ToSQL()
}

// InsertModels builds one multi-row insert from models of a single type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	for i := range models {
		value, err := modelValue(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		plan, err := planFor(value.Type())
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			builder.Columns(plan.columns...)
		}
		builder.Values(plan.values(value)...)
	}
	return builder.ToSQL()
}
