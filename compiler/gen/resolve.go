package gen

import "github.com/graphforge/graphforge/schema/field"

// names builds a membership set from a name list.
func names(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

// resolveFields computes the ordered output field set for the request:
//
//  1. schema fields in declaration order
//  2. only/except filtering (mutually exclusive)
//  3. override exclusion for hand-written fields
//  4. nullability: object kind only, nullable wins over nonNull
//
// Enum definitions are collected from the surviving fields, deduplicated
// by derived name in first-appearance order.
func resolveFields(req *Request) ([]PlannedField, []EnumDef, error) {
	if len(req.only) > 0 && len(req.except) > 0 {
		return nil, nil, &ConflictingFilterError{Target: req.Target}
	}
	var (
		only       = names(req.only)
		except     = names(req.except)
		overridden = names(req.overridden)
		nonNull    = names(req.nonNull)
		nullable   = names(req.nullable)
		fields     []PlannedField
		enums      []EnumDef
		seenEnums  = make(map[string]struct{})
	)
	for _, fd := range req.Schema.Fields {
		if len(req.only) > 0 {
			if _, ok := only[fd.Name]; !ok {
				continue
			}
		} else if _, ok := except[fd.Name]; ok {
			continue
		}
		if _, ok := overridden[fd.Name]; ok {
			continue
		}
		target := MapType(req.Schema.Name, fd.Name, fd.Info)
		pf := PlannedField{Name: fd.Name, Type: target}
		if req.Kind == KindObject {
			if _, ok := nonNull[fd.Name]; ok {
				pf.NonNull = true
			}
			if _, ok := nullable[fd.Name]; ok {
				pf.NonNull = false
			}
		}
		fields = append(fields, pf)
		if fd.Info.Type == field.TypeEnum {
			if _, ok := seenEnums[target.Name]; !ok {
				seenEnums[target.Name] = struct{}{}
				enums = append(enums, EnumDef{Name: target.Name, Values: fd.Info.Enums})
			}
		}
	}
	return fields, enums, nil
}

// resolveAssociations derives the relation fields appended after the
// scalar/enum fields, in association declaration order. Input plans
// never carry associations; the exclusion is a hard override, not a
// default.
func resolveAssociations(req *Request) []PlannedAssociation {
	if req.Kind == KindInput || !req.includeAssoc {
		return nil
	}
	var out []PlannedAssociation
	for _, a := range req.Schema.Associations {
		out = append(out, PlannedAssociation{
			Name: a.Name,
			Type: RelationType(RelationTypeName(a.Target), a.Many),
			Many: a.Many,
		})
	}
	return out
}
