/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

// daysInMonth returns the number of days in the given month of the given
// four-digit year, or 0 if the month is invalid.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
	return 0
}

// expandYY maps a two-digit year onto a four-digit year. GS1 dates have a
// 51-year horizon: values within 50 years ahead or 49 years behind the
// century of the value itself are chosen so that all two-digit years are
// usable. Pinning to century 2000 keeps leap-day validation stable for the
// dictionary's purposes.
func expandYY(yy int) int {
	return 2000 + yy
}

func num2(s string, i int) int {
	return int(s[i]-'0')*10 + int(s[i+1]-'0')
}

// lintDate validates a digits-only date body. yearDigits is 2 or 4, and
// allowDay00 permits a "00" day meaning end-of-month.
func lintDate(value string, yearDigits int, allowDay00 bool) *Error {
	want := yearDigits + 4
	if len(value) != want {
		code := DateTooShort
		if len(value) > want {
			code = DateTooLong
		}
		return errAt(code, 0, len(value))
	}
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}

	var year int
	if yearDigits == 2 {
		year = expandYY(num2(value, 0))
	} else {
		year = num2(value, 0)*100 + num2(value, 2)
	}

	month := num2(value, yearDigits)
	if month < 1 || month > 12 {
		return errAt(IllegalMonth, yearDigits, 2)
	}

	day := num2(value, yearDigits+2)
	if day == 0 {
		if allowDay00 {
			return nil
		}
		return errAt(IllegalDay, yearDigits+2, 2)
	}
	if day > daysInMonth(year, month) {
		return errAt(IllegalDay, yearDigits+2, 2)
	}
	return nil
}

// YYMMD0 ensures the value is a YYMMDD date in which the day may be "00",
// denoting the last day of the month.
func YYMMD0(value string) *Error {
	return lintDate(value, 2, true)
}

// YYMMDD ensures the value is a meaningful YYMMDD date.
func YYMMDD(value string) *Error {
	return lintDate(value, 2, false)
}

// YYYYMMD0 ensures the value is a YYYYMMDD date in which the day may be
// "00", denoting the last day of the month.
func YYYYMMD0(value string) *Error {
	return lintDate(value, 4, true)
}

// YYYYMMDD ensures the value is a meaningful YYYYMMDD date.
func YYYYMMDD(value string) *Error {
	return lintDate(value, 4, false)
}

// YYMMDDHH ensures the value is a YYMMDD date followed by an HH hour.
func YYMMDDHH(value string) *Error {
	if len(value) != 8 {
		code := DateTooShort
		if len(value) > 8 {
			code = DateTooLong
		}
		return errAt(code, 0, len(value))
	}
	if err := YYMMDD(value[:6]); err != nil {
		return err
	}
	if err := HH(value[6:]); err != nil {
		return errAt(err.Code, err.Pos+6, err.Len)
	}
	return nil
}

// HH ensures the value is a two-digit hour, 00 to 23.
func HH(value string) *Error {
	if len(value) != 2 {
		code := HourTooShort
		if len(value) > 2 {
			code = HourTooLong
		}
		return errAt(code, 0, len(value))
	}
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}
	if num2(value, 0) > 23 {
		return errAt(IllegalHour, 0, 2)
	}
	return nil
}

// MI ensures the value is a two-digit minute, 00 to 59.
func MI(value string) *Error {
	if len(value) != 2 {
		code := MinuteTooShort
		if len(value) > 2 {
			code = MinuteTooLong
		}
		return errAt(code, 0, len(value))
	}
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}
	if num2(value, 0) > 59 {
		return errAt(IllegalMinute, 0, 2)
	}
	return nil
}

// SS ensures the value is a two-digit second, 00 to 59.
func SS(value string) *Error {
	if len(value) != 2 {
		code := SecondTooShort
		if len(value) > 2 {
			code = SecondTooLong
		}
		return errAt(code, 0, len(value))
	}
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}
	if num2(value, 0) > 59 {
		return errAt(IllegalSecond, 0, 2)
	}
	return nil
}

// HHMI ensures the value is an HHMM time of day.
func HHMI(value string) *Error {
	if len(value) != 4 {
		code := HourWithMinuteTooShort
		if len(value) > 4 {
			code = HourWithMinuteTooLong
		}
		return errAt(code, 0, len(value))
	}
	if err := HH(value[:2]); err != nil {
		return err
	}
	if err := MI(value[2:]); err != nil {
		return errAt(err.Code, err.Pos+2, err.Len)
	}
	return nil
}

// MMOptSS ensures the value is an MM minute, optionally followed by an SS
// second.
func MMOptSS(value string) *Error {
	switch len(value) {
	case 2:
		return MI(value)
	case 4:
		if err := MI(value[:2]); err != nil {
			return err
		}
		if err := SS(value[2:]); err != nil {
			return errAt(err.Code, err.Pos+2, err.Len)
		}
		return nil
	}
	code := MinuteTooShort
	if len(value) > 4 {
		code = MinuteTooLong
	}
	return errAt(code, 0, len(value))
}
