/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	"github.com/suparena/ltistore/storagemodels"
)

// buildScanExpression turns the clauses of req into a filter expression: an
// AND of equality conditions plus, for expiring tables, a guard that keeps
// records whose expiry attribute is absent or still in the future.
// ok is false when the scan needs no filter at all.
func buildScanExpression(req *storagemodels.ScanRequest) (expr expression.Expression, ok bool, err error) {
	var cond expression.ConditionBuilder
	add := func(c expression.ConditionBuilder) {
		if !ok {
			cond, ok = c, true
			return
		}
		cond = cond.And(c)
	}

	for _, c := range req.Clauses {
		add(expression.NameNoDotSplit(c.Field).Equal(expression.Value(c.Value)))
	}
	if req.ExpiryAttribute != "" {
		attr := expression.NameNoDotSplit(req.ExpiryAttribute)
		add(attr.AttributeNotExists().Or(attr.GreaterThan(expression.Value(req.Now.Unix()))))
	}
	if !ok {
		return expression.Expression{}, false, nil
	}

	expr, err = expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return expression.Expression{}, false, err
	}
	return expr, true, nil
}

// buildUpdateExpression turns a patch into a SET expression, one action per
// field in field order.
func buildUpdateExpression(patch storagemodels.Document) (expression.Expression, error) {
	if len(patch) == 0 {
		return expression.Expression{}, errors.New("no updates provided")
	}

	var update expression.UpdateBuilder
	for i, field := range sortedFields(patch) {
		if i == 0 {
			update = expression.Set(expression.NameNoDotSplit(field), expression.Value(patch[field]))
			continue
		}
		update = update.Set(expression.NameNoDotSplit(field), expression.Value(patch[field]))
	}
	return expression.NewBuilder().WithUpdate(update).Build()
}

func sortedFields(doc storagemodels.Document) []string {
	fields := make([]string, 0, len(doc))
	for f := range doc {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
