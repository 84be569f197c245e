package mappers

import "cabinet/internal/shared/mapper"

func mapRows[T any, R any](rows []*T, toEntity func(*T) (*R, error), getID func(*T) string) ([]*R, error) {
	entities, err := mapper.MapSlicePtrWithID(rows, toEntity, getID)
	if err != nil {
		return nil, err
	}
	if entities == nil {
		return []*R{}, nil
	}
	return entities, nil
}
