package cmd

import "github.com/kingalban/aws-butler/paramsync"

type Options struct {
	Help    bool   `cli:"-h, --help"`
	Version bool   `cli:"-v, --version"`
	Profile string `cli:"-P, --profile" env:"AWS_PROFILE"`
	Region  string `cli:"--region" env:"AWS_REGION"`

	HelpCommand    struct{} `cli:"help"`
	VersionCommand struct{} `cli:"version"`
	Envvars        struct{} `cli:"envvars"`

	Parameters struct {
		Path string `cli:"-p, --path"`

		LS struct {
			Lines int    `cli:"-n, --lines"`
			Sort  string `cli:"--sort"`
			YAML  bool   `cli:"--yaml"`
		} `cli:"ls, list"`

		Pull struct {
			Decrypt bool `cli:"--decrypt, --no-decrypt"`
		} `cli:"pull"`

		Diff struct {
			ShowUnchanged int `cli:"--show-unchanged"`
		} `cli:"diff, plan"`

		Push struct {
			ShowUnchanged int `cli:"--show-unchanged"`
		} `cli:"push"`
	} `cli:"parameters, params, ssm"`

	Cloudwatch struct {
		LogGroupName string `cli:"-g, --log-group-name"`

		LS struct {
			Lines  int    `cli:"-n, --lines"`
			Today  bool   `cli:"--today"`
			Format string `cli:"--format"`
		} `cli:"ls, list"`

		Cat struct {
			PageSize int  `cli:"--page-size"`
			Pager    bool `cli:"--pager, --no-pager"`
			Color    bool `cli:"--color, --no-color"`
		} `cli:"cat"`

		Head struct {
			Lines int  `cli:"-n, --lines"`
			Pager bool `cli:"--pager, --no-pager"`
			Color bool `cli:"--color, --no-color"`
		} `cli:"head"`

		Tail struct {
			Lines int  `cli:"-n, --lines"`
			Pager bool `cli:"--pager, --no-pager"`
			Color bool `cli:"--color, --no-color"`
		} `cli:"tail"`
	} `cli:"cloudwatch, cw, logs"`
}

func NewOptions() *Options {
	opt := &Options{}
	opt.Parameters.Pull.Decrypt = true
	opt.Parameters.Diff.ShowUnchanged = paramsync.DefaultShowUnchanged
	opt.Parameters.Push.ShowUnchanged = paramsync.DefaultShowUnchanged
	opt.Cloudwatch.LS.Lines = 20
	opt.Cloudwatch.LS.Format = "table"
	opt.Cloudwatch.Cat.Pager = true
	opt.Cloudwatch.Cat.Color = true
	opt.Cloudwatch.Head.Lines = 10
	opt.Cloudwatch.Head.Pager = true
	opt.Cloudwatch.Head.Color = true
	opt.Cloudwatch.Tail.Lines = 10
	opt.Cloudwatch.Tail.Pager = true
	opt.Cloudwatch.Tail.Color = true
	return opt
}
