/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/barcodeops/gs1syntax/lint"
)

// The dictionary below is a condensed rendering of the GS1 Barcode Syntax
// Dictionary. Each line is:
//
//	AIs  [flags]  spec...  [attributes...]  # TITLE
//
// AIs is a single AI or an inclusive range sharing one specification.
// Flags: '*' means the AI has no predefined length and must be terminated
// by FNC1 in unbracketed data; '?' means the AI is permitted as a GS1
// Digital Link data attribute.
//
// Spec components: cset letter (N, X, Y, Z), then a fixed width ("N14") or
// a variable bound ("X..20"), then comma-separated linter names. A
// component wrapped in brackets is optional.
//
// Attributes: "ex=" mutually exclusive AI prefixes, "req=" requisite
// alternatives (several req= attributes all apply), "rep" repeatable,
// "dlpkey[=...]" Digital Link primary key with its qualifier AI order.
const dictionary = `
00         ?   N18,csum,keyoff1                 dlpkey                        # SSCC
01         ?   N14,csum,key                     ex=02,255,37 dlpkey=22,10,21  # GTIN
02         ?   N14,csum,key                     ex=01,03 req=37               # CONTENT
03         ?   N14,csum,key                     ex=01,02,37 dlpkey=22,10,21   # MTO GTIN
10         *?  X..20                            req=01,02,8006 ex=235         # BATCH/LOT
11         ?   N6,yymmd0                        req=01,02,8006                # PROD DATE
12         ?   N6,yymmd0                        req=8020                      # DUE DATE
13         ?   N6,yymmd0                        req=01,02,8006                # PACK DATE
15         ?   N6,yymmd0                        req=01,02,8006                # BEST BEFORE or BEST BY
16         ?   N6,yymmd0                        req=01,02,8006                # SELL BY
17         ?   N6,yymmd0                        req=01,02,255,8006            # USE BY or EXPIRY
20         ?   N2                               req=01,02,8006                # VARIANT
21         *?  X..20                            req=01,03,8006 ex=235         # SERIAL
22         *?  X..20                            req=01                        # CPV
235        *?  X..28                            req=01                        # TPX
240        *?  X..30                            req=01,02,8006                # ADDITIONAL ID
241        *?  X..30                            req=01,02,8006                # CUST. PART No.
242        *?  N..6                             req=01,02,8006                # MTO VARIANT
243        *?  X..20                            req=01                       # PCN
250        *?  X..30                            req=01,8006 req=21            # SECONDARY SERIAL
251        *?  X..30                            req=01,8006                   # REF. TO SOURCE
253        *?  N13,csum,key [X..17]             dlpkey                        # GDTI
254        *?  X..20                            req=414                       # GLN EXTENSION COMPONENT
255        *?  N13,csum,key [N..12]             ex=01,02 dlpkey               # GCN
30         *?  N..8                             req=01,02 ex=37               # VAR COUNT
3100-3105  ?   N6                               req=01,02 ex=310              # NET WEIGHT (kg)
3110-3115  ?   N6                               req=01,02 ex=311              # LENGTH (m)
3120-3125  ?   N6                               req=01,02 ex=312              # WIDTH (m)
3130-3135  ?   N6                               req=01,02 ex=313              # HEIGHT (m)
3140-3145  ?   N6                               req=01,02 ex=314              # AREA (m2)
3150-3155  ?   N6                               req=01,02 ex=315              # NET VOLUME (l)
3160-3165  ?   N6                               req=01,02 ex=316              # NET VOLUME (m3)
3200-3205  ?   N6                               req=01,02 ex=320              # NET WEIGHT (lb)
3210-3215  ?   N6                               req=01,02 ex=321              # LENGTH (i)
3220-3225  ?   N6                               req=01,02 ex=322              # LENGTH (f)
3230-3235  ?   N6                               req=01,02 ex=323              # LENGTH (y)
3240-3245  ?   N6                               req=01,02 ex=324              # WIDTH (i)
3250-3255  ?   N6                               req=01,02 ex=325              # WIDTH (f)
3260-3265  ?   N6                               req=01,02 ex=326              # WIDTH (y)
3270-3275  ?   N6                               req=01,02 ex=327              # HEIGHT (i)
3280-3285  ?   N6                               req=01,02 ex=328              # HEIGHT (f)
3290-3295  ?   N6                               req=01,02 ex=329              # HEIGHT (y)
3300-3305  ?   N6                               req=00,01 ex=330              # GROSS WEIGHT (kg)
3310-3315  ?   N6                               req=00,01 ex=331              # LENGTH (m), log
3320-3325  ?   N6                               req=00,01 ex=332              # WIDTH (m), log
3330-3335  ?   N6                               req=00,01 ex=333              # HEIGHT (m), log
3340-3345  ?   N6                               req=00,01 ex=334              # AREA (m2), log
3350-3355  ?   N6                               req=00,01 ex=335              # VOLUME (l), log
3360-3365  ?   N6                               req=00,01 ex=336              # VOLUME (m3), log
3370-3375  ?   N6                               req=01,02 ex=337              # KG PER m2
3400-3405  ?   N6                               req=00,01 ex=340              # GROSS WEIGHT (lb)
3410-3415  ?   N6                               req=00,01 ex=341              # LENGTH (i), log
3420-3425  ?   N6                               req=00,01 ex=342              # LENGTH (f), log
3430-3435  ?   N6                               req=00,01 ex=343              # LENGTH (y), log
3440-3445  ?   N6                               req=00,01 ex=344              # WIDTH (i), log
3450-3455  ?   N6                               req=00,01 ex=345              # WIDTH (f), log
3460-3465  ?   N6                               req=00,01 ex=346              # WIDTH (y), log
3470-3475  ?   N6                               req=00,01 ex=347              # HEIGHT (i), log
3480-3485  ?   N6                               req=00,01 ex=348              # HEIGHT (f), log
3490-3495  ?   N6                               req=00,01 ex=349              # HEIGHT (y), log
3500-3505  ?   N6                               req=01,02 ex=350              # AREA (i2)
3510-3515  ?   N6                               req=01,02 ex=351              # AREA (f2)
3520-3525  ?   N6                               req=01,02 ex=352              # AREA (y2)
3530-3535  ?   N6                               req=00,01 ex=353              # AREA (i2), log
3540-3545  ?   N6                               req=00,01 ex=354              # AREA (f2), log
3550-3555  ?   N6                               req=00,01 ex=355              # AREA (y2), log
3560-3565  ?   N6                               req=01,02 ex=356              # NET WEIGHT (t oz)
3570-3575  ?   N6                               req=01,02 ex=357              # NET VOLUME (oz)
3600-3605  ?   N6                               req=01,02 ex=360              # NET VOLUME (qt)
3610-3615  ?   N6                               req=01,02 ex=361              # NET VOLUME (gal)
3620-3625  ?   N6                               req=00,01 ex=362              # VOLUME (qt), log
3630-3635  ?   N6                               req=00,01 ex=363              # VOLUME (gal), log
3640-3645  ?   N6                               req=01,02 ex=364              # VOLUME (i3)
3650-3655  ?   N6                               req=01,02 ex=365              # VOLUME (f3)
3660-3665  ?   N6                               req=01,02 ex=366              # VOLUME (y3)
3670-3675  ?   N6                               req=00,01 ex=367              # VOLUME (i3), log
3680-3685  ?   N6                               req=00,01 ex=368              # VOLUME (f3), log
3690-3695  ?   N6                               req=00,01 ex=369              # VOLUME (y3), log
37         *?  N..8                             req=00,02,8026 ex=30          # COUNT
3900-3909  *?  N..15                            req=255,8020 ex=391           # AMOUNT
3910-3919  *?  N3,iso4217 N..15                 req=8020 ex=390               # AMOUNT (iso)
3920-3929  *?  N..15                            req=01 ex=393                 # PRICE
3930-3939  *?  N3,iso4217 N..15                 req=01 ex=392                 # PRICE (iso)
3940-3943  *?  N4                               req=255 ex=8111               # PRCNT OFF
3950-3955  *?  N6                               req=01,02                     # PRICE/UoM
400        *?  X..30                            req=01,02                     # ORDER NUMBER
401        *?  X..30                            dlpkey                        # GINC
402        *?  N17,csum,keyoff1                 dlpkey                        # GSIN
403        *?  X..30                            req=00                        # ROUTE
410        ?   N13,csum,key                                                   # SHIP TO LOC
411        ?   N13,csum,key                                                   # BILL TO
412        ?   N13,csum,key                                                   # PURCHASE FROM
413        ?   N13,csum,key                                                   # SHIP FOR LOC
414        ?   N13,csum,key                     dlpkey=254,7040               # LOC No.
415        ?   N13,csum,key                     dlpkey=8020                   # PAY TO
416        ?   N13,csum,key                                                   # PROD/SERV LOC
417        ?   N13,csum,key                     dlpkey=7040                   # PARTY
420        *?  X..20                            ex=421                        # SHIP TO POST
421        *?  N3,iso3166 X..9                  ex=420                        # SHIP TO POST (iso)
422        *?  N3,iso3166                       req=01,02 ex=426              # ORIGIN
423        *?  N..15,iso3166list                req=01,02                     # COUNTRY - INITIAL PROCESS
424        *?  N3,iso3166                       req=01,02                     # COUNTRY - PROCESS
425        *?  N..15,iso3166list                req=01,02                     # COUNTRY - DISASSEMBLY
426        *?  N3,iso3166                       req=01,02                     # COUNTRY - FULL PROCESS
427        *?  X..3                             req=422                       # ORIGIN SUBDIVISION
4300       *?  X..35,pcenc                      req=00                        # SHIP TO COMP
4301       *?  X..35,pcenc                      req=00                        # SHIP TO NAME
4302       *?  X..70,pcenc                      req=00                        # SHIP TO ADD1
4303       *?  X..70,pcenc                      req=4302                      # SHIP TO ADD2
4304       *?  X..70,pcenc                      req=00                        # SHIP TO SUB
4305       *?  X..70,pcenc                      req=00                        # SHIP TO LOC
4306       *?  X..70,pcenc                      req=00                        # SHIP TO REG
4307       *?  X2,iso3166alpha2                 req=00                        # SHIP TO COUNTRY
4308       *?  X..30                            req=00                        # SHIP TO PHONE
4309       *?  N10,latitude N10,longitude       req=00                        # SHIP TO GEO
4310       *?  X..35,pcenc                      req=00                        # RTN TO COMP
4311       *?  X..35,pcenc                      req=00                        # RTN TO NAME
4312       *?  X..70,pcenc                      req=00                        # RTN TO ADD1
4313       *?  X..70,pcenc                      req=4312                      # RTN TO ADD2
4314       *?  X..70,pcenc                      req=00                        # RTN TO SUB
4315       *?  X..70,pcenc                      req=00                        # RTN TO LOC
4316       *?  X..70,pcenc                      req=00                        # RTN TO REG
4317       *?  X2,iso3166alpha2                 req=00                        # RTN TO COUNTRY
4318       *?  X..20                            req=00                        # RTN TO POST
4319       *?  X..30                            req=00                        # RTN TO PHONE
4320       *?  X..35,pcenc                      req=00                        # SRV DESCRIPTION
4321       *?  N1,yesno                         req=00                        # DANGEROUS GOODS
4322       *?  N1,yesno                         req=00                        # AUTH LEAVE
4323       *?  N1,yesno                         req=00                        # SIG REQUIRED
4324       *?  N6,yymmd0 N4,hhmi                req=00                        # NBEF DEL DT
4325       *?  N6,yymmd0 N4,hhmi                req=00                        # NAFT DEL DT
4326       *?  N6,yymmdd                        req=00                        # REL DATE
4330       *?  N6 [X1,hyphen]                   req=00                        # MAX TEMP F
4331       *?  N6 [X1,hyphen]                   req=00                        # MAX TEMP C
4332       *?  N6 [X1,hyphen]                   req=00                        # MIN TEMP F
4333       *?  N6 [X1,hyphen]                   req=00                        # MIN TEMP C
7001       *?  N13                              req=01,02                     # NSN
7002       *?  X..30                            req=01,02                     # MEAT CUT
7003       *?  N8,yymmddhh N2,mi                req=01,02                     # EXPIRY TIME
7004       *?  N..4                             req=01 req=10                 # ACTIVE POTENCY
7005       *?  X..12                            req=01,02                     # CATCH AREA
7006       *?  N6,yymmdd                        req=01,02                     # FIRST FREEZE DATE
7007       *?  N6,yymmdd [N6,yymmdd]            req=01,02                     # HARVEST DATE
7008       *?  X..3                             req=01,02                     # AQUATIC SPECIES
7009       *?  X..10                            req=01,02                     # FISHING GEAR TYPE
7010       *?  X..2                             req=01,02                     # PROD METHOD
7011       *?  N6,yymmdd [N4,hhmi]              req=01                        # TEST BY DATE
7020       *?  X..20                            req=01,8006                   # REFURB LOT
7021       *?  X..20                            req=01,8006                   # FUNC STAT
7022       *?  X..20                            req=01,8006                   # REV STAT
7023       *?  X..30,key                                                      # GIAI - ASSEMBLY
7030-7039  *?  N3,iso3166999 X..27              req=01,02                     # PROCESSOR # s
7040       *?  N1 X1 X1 X1,importeridx                                        # UIC+EXT
710        *?  X..20                            req=01,02                     # NHRN PZN
711        *?  X..20                            req=01,02                     # NHRN CIP
712        *?  X..20                            req=01,02                     # NHRN CN
713        *?  X..20                            req=01,02                     # NHRN DRN
714        *?  X..20                            req=01,02                     # NHRN AIM
715        *?  X..20                            req=01,02                     # NHRN NDC
716        *?  X..20                            req=01,02                     # NHRN AIC
7230-7239  *?  X2 X..28,pcenc                   req=01,8006                   # CERT # s
7240       *?  X..20                            req=01,8006                   # PROTOCOL
7241       *?  N2                               req=8017,8018                 # AIDC MEDIA TYPE
7242       *?  X..25                            req=8017,8018                 # VCN
8001       *?  N4,nonzero N5,nonzero N3,nonzero N1,winding N1  req=01         # DIMENSIONS
8002       *?  X..20                                                          # CMT No.
8003       *?  N1,zero N13,csum,key [X..16]     dlpkey                        # GRAI
8004       *?  X..30,key                        dlpkey=7040                   # GIAI
8005       *?  N6                               req=01,02                     # PRICE PER UNIT
8006       *?  N14,csum N4,pieceoftotal         ex=01,37 dlpkey=22,10,21      # ITIP
8007       *?  X..34,iban                       req=415                       # IBAN
8008       *?  N8,yymmddhh [N..4,mmoptss]       req=01,02                     # PROD TIME
8009       *?  X..50                            req=01                        # OPTSEN
8010       *?  Y..30,key                        dlpkey=8011                   # CPID
8011       *?  N..12,nozeroprefix               req=8010                      # CPID SERIAL
8012       *?  X..20                            req=01,8006                   # VERSION
8013       *?  X..25,csumalpha,key              dlpkey                        # GMN
8017       ?   N18,csum,key                     ex=8018 dlpkey=8019           # GSRN - PROVIDER
8018       ?   N18,csum,key                     ex=8017 dlpkey=8019           # GSRN - RECIPIENT
8019       *?  N..10                            req=8017,8018                 # SRIN
8020       *?  X..25                            req=415                       # REF No.
8026       *?  N14,csum,key N4,pieceoftotal     req=37 ex=02,8006             # ITIP CONTENT
8030       *?  Z..90                                                          # DIGSIG
8112       *?  X..70,couponposoffer             req=01                        # POSITIVE OFFER COUPON
8200       *?  X..70                            req=01                        # PRODUCT URL
90         *?  X..30                                                          # INTERNAL
91         *?  X..90                                                          # INTERNAL
92         *?  X..90                                                          # INTERNAL
93         *?  X..90                                                          # INTERNAL
94         *?  X..90                                                          # INTERNAL
95         *?  X..90                                                          # INTERNAL
96         *?  X..90                                                          # INTERNAL
97         *?  X..90                                                          # INTERNAL
98         *?  X..90                                                          # INTERNAL
99         *?  X..90                                                          # INTERNAL
`

const maxAILength = 4

var (
	table          = map[string]*Entry{}
	lengthByPrefix = map[string]int{}
)

func init() {
	for _, line := range strings.Split(dictionary, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		loadLine(line)
	}
}

func loadLine(line string) {
	title := ""
	if i := strings.Index(line, " # "); i >= 0 {
		title = strings.TrimSpace(line[i+3:])
		line = strings.TrimSpace(line[:i])
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		panic(fmt.Sprintf("malformed dictionary line: %q", line))
	}

	aiSpec := fields[0]
	ais := expandAIs(aiSpec)
	fields = fields[1:]

	proto := Entry{Title: title}
	if isFlags(fields[0]) {
		for _, f := range fields[0] {
			switch f {
			case '*':
				proto.FNC1 = true
			case '?':
				proto.DLAttr = true
			}
		}
		fields = fields[1:]
	}

	for _, tok := range fields {
		switch {
		case tok == "rep":
			proto.Repeatable = true
		case tok == "dlpkey":
			proto.DLKey = true
		case strings.HasPrefix(tok, "dlpkey="):
			proto.DLKey = true
			proto.DLQualifiers = strings.Split(tok[len("dlpkey="):], ",")
		case strings.HasPrefix(tok, "ex="):
			proto.Excludes = strings.Split(tok[len("ex="):], ",")
		case strings.HasPrefix(tok, "req="):
			proto.Requires = append(proto.Requires,
				strings.Split(tok[len("req="):], ","))
		default:
			proto.Parts = append(proto.Parts, parsePart(tok))
		}
	}
	if len(proto.Parts) == 0 {
		panic(fmt.Sprintf("dictionary entry %s has no value specification", aiSpec))
	}

	for _, a := range ais {
		e := proto // value copy per AI
		e.AI = a
		if prev := table[a]; prev != nil {
			panic(fmt.Sprintf("duplicate dictionary entry for AI %s", a))
		}
		table[a] = &e

		prefix := a[:2]
		if n, ok := lengthByPrefix[prefix]; ok && n != len(a) {
			panic(fmt.Sprintf("AI %s conflicts with prefix %s length %d", a, prefix, n))
		}
		lengthByPrefix[prefix] = len(a)
	}
}

// expandAIs turns "3100-3105" into the individual AIs it covers.
func expandAIs(spec string) []string {
	dash := strings.IndexByte(spec, '-')
	if dash < 0 {
		return []string{spec}
	}
	lo, hi := spec[:dash], spec[dash+1:]
	if len(lo) != len(hi) {
		panic(fmt.Sprintf("malformed AI range: %q", spec))
	}
	first, err := strconv.Atoi(lo)
	if err != nil {
		panic(err)
	}
	last, err := strconv.Atoi(hi)
	if err != nil {
		panic(err)
	}
	var ais []string
	for v := first; v <= last; v++ {
		ais = append(ais, fmt.Sprintf("%0*d", len(lo), v))
	}
	return ais
}

func isFlags(tok string) bool {
	for _, c := range tok {
		if c != '*' && c != '?' {
			return false
		}
	}
	return true
}

// parsePart parses a component token such as "N14,csum,key", "X..20" or
// "[N6,yymmdd]".
func parsePart(tok string) Part {
	var p Part
	if strings.HasPrefix(tok, "[") {
		if !strings.HasSuffix(tok, "]") {
			panic(fmt.Sprintf("malformed optional component: %q", tok))
		}
		p.Opt = true
		tok = tok[1 : len(tok)-1]
	}

	switch tok[0] {
	case 'N':
		p.Cset = CsetNumeric
	case 'X':
		p.Cset = Cset82
	case 'Y':
		p.Cset = Cset39
	case 'Z':
		p.Cset = Cset64
	default:
		panic(fmt.Sprintf("unknown character set in component: %q", tok))
	}
	tok = tok[1:]

	size := tok
	if i := strings.IndexByte(tok, ','); i >= 0 {
		size = tok[:i]
		p.Linters = strings.Split(tok[i+1:], ",")
		for _, name := range p.Linters {
			if lint.Lookup(name) == nil {
				panic(fmt.Sprintf("dictionary names unregistered linter %q", name))
			}
		}
	}

	if strings.HasPrefix(size, "..") {
		max, err := strconv.Atoi(size[2:])
		if err != nil {
			panic(err)
		}
		p.Min, p.Max = 1, max
	} else {
		n, err := strconv.Atoi(size)
		if err != nil {
			panic(err)
		}
		p.Min, p.Max = n, n
	}
	return p
}
