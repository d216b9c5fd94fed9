package lsx

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ls-go/lsf/errs"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/resource"
	"github.com/ls-go/lsf/value"
)

func toDocument(res *resource.Resource) (*saveDocument, error) {
	doc := &saveDocument{
		Version: versionElement{
			Major:    res.Metadata.Major,
			Minor:    res.Metadata.Minor,
			Revision: res.Metadata.Revision,
			Build:    res.Metadata.Build,
		},
	}

	for _, region := range res.Regions {
		re := regionElement{ID: region.Name}

		for _, node := range region.Nodes {
			ne, err := toNodeElement(node)
			if err != nil {
				return nil, err
			}

			re.Nodes = append(re.Nodes, ne)
		}

		doc.Regions = append(doc.Regions, re)
	}

	return doc, nil
}

func toNodeElement(node *resource.Node) (nodeElement, error) {
	id := node.ID
	if id == "" {
		id = node.Name
	}

	ne := nodeElement{ID: id}

	for _, attr := range node.Attributes {
		s, err := attributeValueToString(attr.Type, attr.Value)
		if err != nil {
			return nodeElement{}, fmt.Errorf("lsx: node %q attribute %q: %w", node.Name, attr.Name, err)
		}

		ne.Attributes = append(ne.Attributes, attributeElement{
			ID:    attr.Name,
			Type:  attr.Type.String(),
			Value: s,
		})
	}

	if len(node.Children) > 0 {
		ne.Children = &childrenElement{}

		for _, child := range node.Children {
			childElem, err := toNodeElement(child)
			if err != nil {
				return nodeElement{}, err
			}

			ne.Children.Nodes = append(ne.Children.Nodes, childElem)
		}
	}

	return ne, nil
}

func fromDocument(doc *saveDocument, diag *errs.Diagnostics) *resource.Resource {
	res := &resource.Resource{
		Metadata: resource.Metadata{
			Major:    doc.Version.Major,
			Minor:    doc.Version.Minor,
			Revision: doc.Version.Revision,
			Build:    doc.Version.Build,
		},
	}

	for _, re := range doc.Regions {
		region := &resource.Region{Name: re.ID}

		for _, ne := range re.Nodes {
			region.Nodes = append(region.Nodes, fromNodeElement(ne, diag))
		}

		res.Regions = append(res.Regions, region)
	}

	return res
}

func fromNodeElement(ne nodeElement, diag *errs.Diagnostics) *resource.Node {
	node := &resource.Node{Name: ne.ID, ID: ne.ID}

	for _, ae := range ne.Attributes {
		typ, err := format.ParseAttributeType(ae.Type)
		if err != nil {
			diag.Add(&errs.UnknownAttributeTypeError{TypeID: 0xFF})

			continue
		}

		v, err := attributeValueFromString(typ, ae.Value)
		if err != nil {
			diag.Add(&errs.UnresolvedStringReferenceError{Context: "attribute value " + ae.ID, Ref: 0})

			continue
		}

		node.Attributes = append(node.Attributes, &resource.Attribute{Name: ae.ID, Type: typ, Value: v})
	}

	if ne.Children != nil {
		for _, childElem := range ne.Children.Nodes {
			node.Children = append(node.Children, fromNodeElement(childElem, diag))
		}
	}

	return node
}

func attributeValueToString(t format.AttributeType, v any) (string, error) {
	switch t {
	case format.TypeNone:
		return "", nil
	case format.TypeUInt8:
		return strconv.FormatUint(uint64(v.(byte)), 10), nil //nolint:forcetypeassert
	case format.TypeInt8:
		return strconv.FormatInt(int64(v.(int8)), 10), nil //nolint:forcetypeassert
	case format.TypeInt16:
		return strconv.FormatInt(int64(v.(int16)), 10), nil //nolint:forcetypeassert
	case format.TypeUInt16:
		return strconv.FormatUint(uint64(v.(uint16)), 10), nil //nolint:forcetypeassert
	case format.TypeInt32:
		return strconv.FormatInt(int64(v.(int32)), 10), nil //nolint:forcetypeassert
	case format.TypeUInt32:
		return strconv.FormatUint(uint64(v.(uint32)), 10), nil //nolint:forcetypeassert
	case format.TypeInt64, format.TypeInt64Alt:
		return strconv.FormatInt(v.(int64), 10), nil //nolint:forcetypeassert
	case format.TypeUInt64:
		return strconv.FormatUint(v.(uint64), 10), nil //nolint:forcetypeassert
	case format.TypeFloat:
		return strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32), nil //nolint:forcetypeassert
	case format.TypeDouble:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil //nolint:forcetypeassert
	case format.TypeBool:
		if v.(bool) { //nolint:forcetypeassert
			return "True", nil
		}

		return "False", nil
	case format.TypeIVec2, format.TypeIVec3, format.TypeIVec4,
		format.TypeFVec2, format.TypeFVec3, format.TypeFVec4,
		format.TypeMat2, format.TypeMat3, format.TypeMat3x4, format.TypeMat4x3, format.TypeMat4:
		return vecToString(v.(value.Vec)), nil //nolint:forcetypeassert
	case format.TypeLSString, format.TypeLSStringAlt, format.TypePath, format.TypeFixedString,
		format.TypeWString, format.TypeLSWString:
		return v.(string), nil //nolint:forcetypeassert
	case format.TypeScratchBuffer:
		return base64.StdEncoding.EncodeToString(v.([]byte)), nil //nolint:forcetypeassert
	case format.TypeGUID:
		return v.(uuid.UUID).String(), nil //nolint:forcetypeassert
	case format.TypeTranslatedString:
		ts := v.(value.TranslatedString) //nolint:forcetypeassert

		return ts.Value + ";" + ts.Handle, nil
	case format.TypeTranslatedFSString:
		tfs := v.(value.TranslatedFSString) //nolint:forcetypeassert

		return tfs.Value + ";" + tfs.Handle, nil
	default:
		return "", fmt.Errorf("lsx: unsupported attribute type %d", t)
	}
}

func attributeValueFromString(t format.AttributeType, s string) (any, error) {
	switch t {
	case format.TypeNone:
		return nil, nil
	case format.TypeUInt8:
		n, err := strconv.ParseUint(s, 10, 8)

		return byte(n), err
	case format.TypeInt8:
		n, err := strconv.ParseInt(s, 10, 8)

		return int8(n), err
	case format.TypeInt16:
		n, err := strconv.ParseInt(s, 10, 16)

		return int16(n), err
	case format.TypeUInt16:
		n, err := strconv.ParseUint(s, 10, 16)

		return uint16(n), err
	case format.TypeInt32:
		n, err := strconv.ParseInt(s, 10, 32)

		return int32(n), err
	case format.TypeUInt32:
		n, err := strconv.ParseUint(s, 10, 32)

		return uint32(n), err
	case format.TypeInt64, format.TypeInt64Alt:
		return strconv.ParseInt(s, 10, 64)
	case format.TypeUInt64:
		return strconv.ParseUint(s, 10, 64)
	case format.TypeFloat:
		n, err := strconv.ParseFloat(s, 32)

		return float32(n), err
	case format.TypeDouble:
		return strconv.ParseFloat(s, 64)
	case format.TypeBool:
		return strings.EqualFold(s, "True"), nil
	case format.TypeIVec2, format.TypeIVec3, format.TypeIVec4,
		format.TypeFVec2, format.TypeFVec3, format.TypeFVec4,
		format.TypeMat2, format.TypeMat3, format.TypeMat3x4, format.TypeMat4x3, format.TypeMat4:
		return vecFromString(s)
	case format.TypeLSString, format.TypeLSStringAlt, format.TypePath, format.TypeFixedString,
		format.TypeWString, format.TypeLSWString:
		return s, nil
	case format.TypeScratchBuffer:
		return base64.StdEncoding.DecodeString(s)
	case format.TypeGUID:
		return uuid.Parse(s)
	case format.TypeTranslatedString:
		val, handle := splitTranslated(s)

		return value.TranslatedString{Value: val, Handle: handle}, nil
	case format.TypeTranslatedFSString:
		val, handle := splitTranslated(s)

		return value.TranslatedFSString{TranslatedString: value.TranslatedString{Value: val, Handle: handle}}, nil
	default:
		return nil, fmt.Errorf("lsx: unsupported attribute type %d", t)
	}
}

func vecToString(v value.Vec) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strings.Join(parts, " ")
}

func vecFromString(s string) (value.Vec, error) {
	fields := strings.Fields(s)
	out := make(value.Vec, len(fields))

	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("lsx: parsing vector component %q: %w", f, err)
		}

		out[i] = n
	}

	return out, nil
}

func splitTranslated(s string) (value, handle string) {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return s[:i], s[i+1:]
	}

	return s, ""
}
